// Package compose turns the parts of an inspection record into page content:
// the cover, one page-run per photographed section and the flowing checklist.
//
// Composers only draw through a [flow.Cursor]; they never decide page
// breaks themselves, and they never touch the footer band.
package compose

import (
	"fmt"

	"github.com/matzehuels/inspectreport/pkg/fonts"
	"github.com/matzehuels/inspectreport/pkg/report/flow"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// Meta is the document-level data shown on the cover.
type Meta struct {
	ReportID string
	Date     string // display form of the inspection date
	Score    int
}

// Degradation records a photo that was drawn as a placeholder.
type Degradation struct {
	Section string `json:"section"`
	Photo   int    `json:"photo"` // 1-based
	Reason  string `json:"reason"`
}

// Err returns d as an ITEM_RENDER_DEGRADED error for logging.
func (d Degradation) Err() error {
	return errs.New(errs.ErrCodeItemDegraded, "section %s photo %d: %s", d.Section, d.Photo, d.Reason)
}

func (d Degradation) String() string {
	return fmt.Sprintf("%s#%d: %s", d.Section, d.Photo, d.Reason)
}

// RunningHeader returns the header drawn at the top of every page except the
// cover: the brand on the left and the region label on the right.
func RunningHeader(th style.Theme) flow.HeaderFunc {
	return func(p *page.Page, label string, continued bool) {
		pal, g := th.Palette, th.Page
		band := th.Layout.HeaderBand
		p.FillRect(0, 0, g.Width, band, pal.Navy)

		base := middle(0, band, 6.5)
		brand := th.Brand.Name
		if th.Brand.Tagline != "" {
			brand += "  ·  " + th.Brand.Tagline
		}
		p.Text(g.Margin, base, brand, page.TextStyle{Size: 6.5, Color: pal.HeaderInk})

		if continued {
			label += " (continued)"
		}
		label = fonts.Truncate(label, th.ContentWidth()/2, 6.5, false)
		p.Text(g.Width-g.Margin, base, label, page.TextStyle{Size: 6.5, Color: pal.Faint, Align: page.AlignRight})
	}
}

// middle returns the baseline that vertically centers size-point text in a
// band of height h at y.
func middle(y, h, size float64) float64 {
	return y + (h+fonts.Ascent(size))/2
}

// badge draws a rounded, filled label right-aligned at right.
func badge(p *page.Page, right, y, h float64, text string, size float64, fill, ink style.Color) float64 {
	w := fonts.Width(text, size, true) + 6
	p.RoundedRect(right-w, y, w, h, 2, fill)
	p.Text(right-w/2, middle(y, h, size), text, page.TextStyle{Size: size, Bold: true, Color: ink, Align: page.AlignCenter})
	return w
}

// mark draws a section or category icon at x and returns the advance. Icons
// outside the standard font's repertoire are drawn as a colored chip.
func mark(p *page.Page, x, y, h float64, icon string, size float64, c style.Color) float64 {
	if s := fonts.Printable(icon); s != "" {
		p.Text(x, middle(y, h, size), s, page.TextStyle{Size: size, Bold: true, Color: c})
		return fonts.Width(s, size, true) + 2
	}
	side := h * 0.4
	p.RoundedRect(x, y+(h-side)/2, side, side, 0.8, c)
	return side + 2.5
}
