package style

import (
	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// SectionBarHeight is the height of the title bar opening a photo section.
const SectionBarHeight = 11.0

// Geometry is the physical page in millimetres.
type Geometry struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Margin float64 `toml:"margin"`
}

// Layout holds the fixed block sizes used by the composers, in millimetres.
type Layout struct {
	HeaderBand    float64 `toml:"header_band"`    // running header band height
	FooterBand    float64 `toml:"footer_band"`    // footer band height
	ContentTop    float64 `toml:"content_top"`    // first usable offset below the running header
	BottomReserve float64 `toml:"bottom_reserve"` // distance of the printable bound from the page bottom

	GridColumns   int     `toml:"grid_columns"`
	GridGap       float64 `toml:"grid_gap"`
	CaptionHeight float64 `toml:"caption_height"`

	TableHeaderHeight float64 `toml:"table_header_height"`
	TableRowHeight    float64 `toml:"table_row_height"`
	CompactRowHeight  float64 `toml:"compact_row_height"`

	ChecklistColumns int     `toml:"checklist_columns"`
	ItemRowHeight    float64 `toml:"item_row_height"`
}

// Brand is the identity printed on every report.
type Brand struct {
	Name        string `toml:"name"`
	Tagline     string `toml:"tagline"`
	Badge       string `toml:"badge"`
	Prefix      string `toml:"prefix"` // report id and file name prefix
	Title       string `toml:"title"`
	Attribution string `toml:"attribution"`
}

// Theme is the complete, immutable configuration of one report.
type Theme struct {
	Page    Geometry `toml:"page"`
	Layout  Layout   `toml:"layout"`
	Brand   Brand    `toml:"brand"`
	Palette Palette  `toml:"palette"`
}

// DefaultTheme returns an A4 portrait theme with the standard brand.
func DefaultTheme() Theme {
	return Theme{
		Page: Geometry{Width: 210, Height: 297, Margin: 14},
		Layout: Layout{
			HeaderBand:    8,
			FooterBand:    8,
			ContentTop:    14,
			BottomReserve: 16,

			GridColumns:   2,
			GridGap:       6,
			CaptionHeight: 8,

			TableHeaderHeight: 8,
			TableRowHeight:    7.5,
			CompactRowHeight:  6,

			ChecklistColumns: 2,
			ItemRowHeight:    6,
		},
		Brand: Brand{
			Name:        "AryaInspectionService",
			Tagline:     "Professional Vehicle Inspection",
			Badge:       "AIS",
			Prefix:      "AIS",
			Title:       "VEHICLE CONDITION INSPECTION REPORT",
			Attribution: "© AryaInspectionService · Confidential Inspection Report",
		},
		Palette: DefaultPalette(),
	}
}

// ContentWidth is the printable width between the margins.
func (t Theme) ContentWidth() float64 {
	return t.Page.Width - 2*t.Page.Margin
}

// Bottom is the lowest offset any block may reach.
func (t Theme) Bottom() float64 {
	return t.Page.Height - t.Layout.BottomReserve
}

// Capacity is the usable height of a continuation page.
func (t Theme) Capacity() float64 {
	return t.Bottom() - t.Layout.ContentTop
}

// GridRowHeight is the height of one photo grid row: a 4:3 frame across one
// column plus its caption.
func (t Theme) GridRowHeight() float64 {
	n := float64(min(3, max(1, t.Layout.GridColumns)))
	cw := (t.ContentWidth() - t.Layout.GridGap*(n-1)) / n
	return cw*3/4 + t.Layout.CaptionHeight
}

// Validate rejects geometry the composers cannot lay out.
func (t Theme) Validate() error {
	p, l := t.Page, t.Layout
	switch {
	case p.Width < 100 || p.Height < 150:
		return errs.New(errs.ErrCodeInvalidConfig, "page %gx%g mm is too small (min 100x150)", p.Width, p.Height)
	case p.Margin < 0 || t.ContentWidth() < p.Width/2:
		return errs.New(errs.ErrCodeInvalidConfig, "margin %g mm leaves no content width", p.Margin)
	case l.HeaderBand <= 0 || l.ContentTop < l.HeaderBand:
		return errs.New(errs.ErrCodeInvalidConfig, "content top %g must lie below the header band %g", l.ContentTop, l.HeaderBand)
	case l.BottomReserve < l.FooterBand:
		return errs.New(errs.ErrCodeInvalidConfig, "bottom reserve %g must cover the footer band %g", l.BottomReserve, l.FooterBand)
	case l.GridColumns < 1 || l.GridColumns > 3:
		return errs.New(errs.ErrCodeInvalidConfig, "grid columns %d out of range [1,3]", l.GridColumns)
	case l.ChecklistColumns < 1 || l.ChecklistColumns > 3:
		return errs.New(errs.ErrCodeInvalidConfig, "checklist columns %d out of range [1,3]", l.ChecklistColumns)
	case l.GridGap < 0 || l.CaptionHeight <= 0:
		return errs.New(errs.ErrCodeInvalidConfig, "grid gap and caption height must be positive")
	case l.TableHeaderHeight <= 0 || l.TableRowHeight <= 0 || l.CompactRowHeight <= 0 || l.ItemRowHeight <= 0:
		return errs.New(errs.ErrCodeInvalidConfig, "row heights must be positive")
	}
	if t.Capacity() < 120 {
		return errs.New(errs.ErrCodeInvalidConfig, "printable height %g mm is too small", t.Capacity())
	}
	if row := t.GridRowHeight() + SectionBarHeight; row > t.Capacity() {
		return errs.New(errs.ErrCodeInvalidConfig,
			"photo row with section bar (%.1f mm) exceeds the printable height of %.1f mm", row, t.Capacity())
	}
	return errs.ValidatePrefix(t.Brand.Prefix)
}
