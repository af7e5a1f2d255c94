package compose

import (
	"fmt"

	"github.com/matzehuels/inspectreport/pkg/fonts"
	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/report/flow"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

// ChecklistLabel is the running header label of the checklist region.
const ChecklistLabel = "Inspection Checklist"

const (
	titleHeight    = 12
	categoryHeight = 10
	stripHeight    = 6
	columnGap      = 4
	itemFont       = 7
)

// Checklist draws all categories as one continuous region starting on a new
// page. Categories, subsection strips and item rows are placed whole and
// headings are kept with the first row below them.
func Checklist(c *flow.Cursor, th style.Theme, cats []inspection.ChecklistCategory) {
	if len(cats) == 0 {
		return
	}
	c.NewPage(ChecklistLabel)
	pal := th.Palette
	x, w := th.Page.Margin, th.ContentWidth()

	overall := inspection.ChecklistScore(cats)
	y := c.ReserveKeep(titleHeight, categoryHeight, ChecklistLabel)
	p := c.Page()
	p.Text(x, y+8, "INSPECTION CHECKLIST", page.TextStyle{Size: 11, Bold: true, Color: pal.Text})
	badge(p, x+w, y+2, 7, fmt.Sprintf("OVERALL %d / 100", overall), 7, pal.ForScore(overall), pal.OnDark)
	p.Rule(x, x+w, y+titleHeight-1, pal.Border, page.DefaultLineWidth)
	c.Skip(2)

	for _, cat := range cats {
		category(c, th, cat)
		c.Skip(blockGap)
	}
}

func category(c *flow.Cursor, th style.Theme, cat inspection.ChecklistCategory) {
	pal := th.Palette
	x, w := th.Page.Margin, th.ContentWidth()
	rowH := th.Layout.ItemRowHeight

	y := c.ReserveKeep(categoryHeight, stripHeight+rowH, cat.Name)
	p := c.Page()
	p.FillRect(x, y, w, categoryHeight, pal.Navy)

	score := inspection.CategoryScore(cat)
	status := style.ForScore(score)
	bw := badge(p, x+w-3, y+2, categoryHeight-4, fmt.Sprintf("%s  %d%%", status.Label(), score), 7, pal.ForStatus(status), pal.OnDark)
	left := x + 4
	left += mark(p, left, y, categoryHeight, cat.Icon, 9, pal.Accent)
	p.Text(left, middle(y, categoryHeight, 9), fonts.Truncate(cat.Name, x+w-bw-6-left, 9, true),
		page.TextStyle{Size: 9, Bold: true, Color: pal.OnDark})
	c.Skip(1)

	for _, sub := range cat.Subsections {
		if len(sub.Items) == 0 {
			continue
		}
		subsection(c, th, cat.Name, sub)
	}
}

func subsection(c *flow.Cursor, th style.Theme, label string, sub inspection.Subsection) {
	pal := th.Palette
	x, w := th.Page.Margin, th.ContentWidth()
	rowH := th.Layout.ItemRowHeight

	if sub.Name != "" {
		y := c.ReserveKeep(stripHeight, rowH, label)
		p := c.Page()
		p.FillRect(x, y, w, stripHeight, pal.Surface)
		p.FillRect(x, y, 1, stripHeight, pal.Accent)
		p.Text(x+3, middle(y, stripHeight, 7), fonts.Truncate(sub.Name, w-6, 7, true),
			page.TextStyle{Size: 7, Bold: true, Color: pal.Muted})
	}

	cols := max(1, th.Layout.ChecklistColumns)
	colW := (w - columnGap*float64(cols-1)) / float64(cols)
	for start := 0; start < len(sub.Items); start += cols {
		y := c.Reserve(rowH, label)
		p := c.Page()
		for i, it := range sub.Items[start:min(start+cols, len(sub.Items))] {
			itemCell(p, pal, x+float64(i)*(colW+columnGap), y, colW, rowH, it)
		}
		p.Rule(x, x+w, y+rowH, pal.Border, 0.1)
	}
}

func itemCell(p *page.Page, pal style.Palette, x, y, w, h float64, it inspection.ChecklistItem) {
	status := it.Status()
	dot := pal.ForItem(status)
	if status == inspection.StatusNeutral {
		dot = pal.Faint
	}
	p.RoundedRect(x+0.5, y+h/2-1, 2, 2, 1, dot)

	value := it.ResolvedValue()
	if value == "" {
		value = "-"
	}
	valueW := fonts.Width(value, itemFont, true)
	valueW = min(valueW, w*0.45)
	value = fonts.Truncate(value, valueW, itemFont, true)

	base := middle(y, h, itemFont)
	label := fonts.Truncate(it.Label, w-valueW-7, itemFont, false)
	p.Text(x+4, base, label, page.TextStyle{Size: itemFont, Color: pal.Text})
	p.Text(x+w-1, base, value, page.TextStyle{Size: itemFont, Bold: true, Color: pal.ForItem(status), Align: page.AlignRight})
}
