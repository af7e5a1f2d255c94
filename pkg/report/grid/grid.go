package grid

import (
	"github.com/matzehuels/inspectreport/pkg/fonts"
	"github.com/matzehuels/inspectreport/pkg/report/flow"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

// Placeholder is drawn in cells whose photo could not be prepared.
const Placeholder = "Photo unavailable"

// Cell is one photo slot.
type Cell struct {
	Result
	Caption string
}

// Geometry is the column layout of a photo grid.
type Geometry struct {
	X, Width      float64
	Columns       int
	Gap           float64
	CaptionHeight float64

	// Label is repeated in the running header when the grid continues.
	Label string
}

// GeometryFor returns the theme's grid geometry over the content width.
func GeometryFor(th style.Theme, label string) Geometry {
	return Geometry{
		X:             th.Page.Margin,
		Width:         th.ContentWidth(),
		Columns:       th.Layout.GridColumns,
		Gap:           th.Layout.GridGap,
		CaptionHeight: th.Layout.CaptionHeight,
		Label:         label,
	}
}

func (s Geometry) columns() int {
	return min(3, max(1, s.Columns))
}

// CellWidth returns the width of one photo frame.
func (s Geometry) CellWidth() float64 {
	n := float64(s.columns())
	return (s.Width - s.Gap*(n-1)) / n
}

// PhotoHeight returns the frame height, fixed by the 4:3 ratio.
func (s Geometry) PhotoHeight() float64 {
	return s.CellWidth() * AspectH / AspectW
}

// RowHeight returns the height reserved per grid row.
func (s Geometry) RowHeight() float64 {
	return s.PhotoHeight() + s.CaptionHeight
}

// Rows returns the number of grid rows needed for n photos.
func (s Geometry) Rows(n int) int {
	cols := s.columns()
	return (n + cols - 1) / cols
}

// Draw renders cells row by row. Each row reserves its full height before
// any of its cells is drawn.
func Draw(c *flow.Cursor, s Geometry, cells []Cell, pal style.Palette) {
	cols := s.columns()
	cw, ph := s.CellWidth(), s.PhotoHeight()

	for start := 0; start < len(cells); start += cols {
		if start > 0 {
			c.Skip(s.Gap / 2)
		}
		y := c.Reserve(s.RowHeight(), s.Label)
		p := c.Page()
		for i, cell := range cells[start:min(start+cols, len(cells))] {
			x := s.X + float64(i)*(cw+s.Gap)
			drawCell(p, x, y, cw, ph, s.CaptionHeight, cell, pal)
		}
	}
}

func drawCell(p *page.Page, x, y, w, h, captionH float64, cell Cell, pal style.Palette) {
	if cell.OK() {
		p.Image(x, y, w, h, cell.Image)
		p.StrokeRect(x, y, w, h, pal.Border, page.DefaultLineWidth)
	} else {
		p.FillStrokeRect(x, y, w, h, pal.Empty, pal.Border, page.DefaultLineWidth)
		p.Text(x+w/2, y+h/2+1, Placeholder, page.TextStyle{Size: 8, Color: pal.Faint, Align: page.AlignCenter})
	}

	p.FillRect(x, y+h, w, captionH-1, pal.Surface)
	caption := fonts.Truncate(cell.Caption, w-4, 7, false)
	p.Text(x+2, y+h+(captionH-1)/2+fonts.Ascent(7)/2, caption, page.TextStyle{Size: 7, Color: pal.Muted})
}
