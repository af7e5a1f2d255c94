// Package table draws header + striped-row tables through a flow.Cursor.
//
// Every row reserves its height before it is drawn, so a long table finishes
// the current page, reprints its header row under a continuation header on
// the next page and resumes. A row is never split.
package table

import (
	"github.com/matzehuels/inspectreport/pkg/fonts"
	"github.com/matzehuels/inspectreport/pkg/report/flow"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

// Column describes one column. X is the fractional offset of the column's
// left edge within the table width; the column ends where the next begins.
type Column struct {
	Title string
	X     float64
	Align page.Align
}

// Cell is one table cell. A nil Color uses the style's text color.
type Cell struct {
	Text  string
	Color *style.Color
	Bold  bool
}

// Colored returns a cell with a fixed color.
func Colored(text string, c style.Color, bold bool) Cell {
	return Cell{Text: text, Color: &c, Bold: bold}
}

// Table is the content of one table.
type Table struct {
	Columns []Column
	Rows    [][]Cell

	// Label is repeated in the running header of continuation pages.
	Label string
}

// Style holds the geometry and colors of a table.
type Style struct {
	HeaderHeight float64
	RowHeight    float64
	HeaderSize   float64 // points
	FontSize     float64 // points
	Padding      float64

	HeaderFill style.Color
	HeaderText style.Color
	Stripe     style.Color
	Rule       style.Color
	Text       style.Color
}

// StyleFor derives a table style from a theme with the given row height.
func StyleFor(th style.Theme, rowHeight float64) Style {
	p := th.Palette
	return Style{
		HeaderHeight: th.Layout.TableHeaderHeight,
		RowHeight:    rowHeight,
		HeaderSize:   7,
		FontSize:     8,
		Padding:      3,
		HeaderFill:   p.Navy,
		HeaderText:   p.OnDark,
		Stripe:       p.Surface,
		Rule:         p.Border,
		Text:         p.Text,
	}
}

// Draw renders t at x with the given width, starting at the cursor.
func Draw(c *flow.Cursor, x, width float64, t Table, st Style) {
	next := 0.0
	if len(t.Rows) > 0 {
		next = st.RowHeight
	}
	y := c.ReserveKeep(st.HeaderHeight, next, t.Label)
	drawHeader(c.Page(), x, y, width, t.Columns, st)

	for i, row := range t.Rows {
		if !c.Fits(st.RowHeight) {
			c.Break(t.Label)
			drawHeader(c.Page(), x, c.Reserve(st.HeaderHeight, t.Label), width, t.Columns, st)
		}
		drawRow(c.Page(), x, c.Reserve(st.RowHeight, t.Label), width, i, t.Columns, row, st)
	}
}

// Height returns the height of t drawn without page breaks.
func Height(t Table, st Style) float64 {
	return st.HeaderHeight + float64(len(t.Rows))*st.RowHeight
}

func drawHeader(p *page.Page, x, y, width float64, cols []Column, st Style) {
	p.FillRect(x, y, width, st.HeaderHeight, st.HeaderFill)
	ts := page.TextStyle{Size: st.HeaderSize, Bold: true, Color: st.HeaderText}
	base := baseline(y, st.HeaderHeight, st.HeaderSize)
	for i, col := range cols {
		drawCell(p, x, width, base, cols, i, col.Title, ts, st.Padding)
	}
}

func drawRow(p *page.Page, x, y, width float64, index int, cols []Column, row []Cell, st Style) {
	if index%2 == 1 {
		p.FillRect(x, y, width, st.RowHeight, st.Stripe)
	}
	p.Rule(x, x+width, y+st.RowHeight, st.Rule, 0.2)
	base := baseline(y, st.RowHeight, st.FontSize)
	for i := range cols {
		if i >= len(row) {
			break
		}
		cell := row[i]
		ts := page.TextStyle{Size: st.FontSize, Bold: cell.Bold, Color: st.Text}
		if cell.Color != nil {
			ts.Color = *cell.Color
		}
		drawCell(p, x, width, base, cols, i, cell.Text, ts, st.Padding)
	}
}

func drawCell(p *page.Page, x, width, base float64, cols []Column, i int, text string, ts page.TextStyle, pad float64) {
	left := x + cols[i].X*width
	right := x + width
	if i+1 < len(cols) {
		right = x + cols[i+1].X*width
	}
	text = fonts.Truncate(text, right-left-2*pad, ts.Size, ts.Bold)
	ts.Align = cols[i].Align
	switch cols[i].Align {
	case page.AlignRight:
		p.Text(right-pad, base, text, ts)
	case page.AlignCenter:
		p.Text((left+right)/2, base, text, ts)
	default:
		p.Text(left+pad, base, text, ts)
	}
}

// baseline vertically centers a size-point line in a band of height h.
func baseline(y, h, size float64) float64 {
	return y + h/2 + fonts.Ascent(size)/2
}
