package compose

import (
	"fmt"
	"strings"

	"github.com/matzehuels/inspectreport/pkg/fonts"
	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/report/flow"
	"github.com/matzehuels/inspectreport/pkg/report/grid"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

const (
	barHeight     = style.SectionBarHeight
	calloutHeight = 22
	noteLines     = 2
)

// NoNotes is shown in the callout of a section without notes.
const NoNotes = "No notes recorded"

// PhotoSections draws one page-run per section that has photos, in record
// order. Sections without photos produce no page. Photos that cannot be
// decoded are drawn as placeholders and returned as degradations.
func PhotoSections(c *flow.Cursor, th style.Theme, sections []inspection.PhotoSection, maxPixels int) []Degradation {
	var degraded []Degradation
	for _, s := range sections {
		if len(s.Photos) == 0 {
			continue
		}
		degraded = append(degraded, Section(c, th, s, maxPixels)...)
	}
	return degraded
}

// Section draws a single photographed section starting on a new page.
func Section(c *flow.Cursor, th style.Theme, s inspection.PhotoSection, maxPixels int) []Degradation {
	c.NewPage(s.Name)
	geo := grid.GeometryFor(th, s.Name)

	next := geo.RowHeight()
	if len(s.Photos) == 0 {
		next = calloutHeight
	}
	sectionBar(c.Page(), th, c.ReserveKeep(barHeight, next, s.Name), s)
	c.Skip(4)

	var degraded []Degradation
	cells := make([]grid.Cell, len(s.Photos))
	for i, res := range grid.DecodeAll(s.Photos, maxPixels) {
		cells[i] = grid.Cell{Result: res, Caption: fmt.Sprintf("Photo %d · %s", i+1, s.Name)}
		if !res.OK() {
			degraded = append(degraded, Degradation{Section: s.ID, Photo: i + 1, Reason: res.Reason})
		}
	}
	grid.Draw(c, geo, cells, th.Palette)
	c.Skip(4)

	callout(c.Page(), th, c.Reserve(calloutHeight, s.Name), s)
	c.Skip(blockGap)
	return degraded
}

func sectionBar(p *page.Page, th style.Theme, y float64, s inspection.PhotoSection) {
	pal := th.Palette
	x, w := th.Page.Margin, th.ContentWidth()
	p.FillRect(x, y, w, barHeight, pal.Navy)

	bw := badge(p, x+w-3, y+2, barHeight-4, strings.ToUpper(s.Condition.Label()), 7, pal.ForCondition(s.Condition), pal.OnDark)
	left := x + 4
	left += mark(p, left, y, barHeight, s.Icon, 10, pal.Accent)
	title := fonts.Truncate(strings.ToUpper(s.Name), x+w-bw-6-left, 10, true)
	p.Text(left, middle(y, barHeight, 10), title, page.TextStyle{Size: 10, Bold: true, Color: pal.OnDark})
}

func callout(p *page.Page, th style.Theme, y float64, s inspection.PhotoSection) {
	pal := th.Palette
	x, w := th.Page.Margin, th.ContentWidth()
	p.FillStrokeRect(x, y, w, calloutHeight, pal.Surface, pal.Border, page.DefaultLineWidth)

	label := page.TextStyle{Size: 6.5, Bold: true, Color: pal.Muted}
	p.Text(x+4, y+6, "CONDITION RATING", label)
	p.Text(x+4, y+14, s.Condition.Label(), page.TextStyle{Size: 11, Bold: true, Color: pal.ForCondition(s.Condition)})

	nx := x + w*0.35
	p.Text(nx, y+6, "INSPECTOR NOTES", label)
	lines := fonts.Wrap(s.Notes, w*0.62, 7.5, false, noteLines)
	if len(lines) == 0 {
		p.Text(nx, y+13, NoNotes, page.TextStyle{Size: 7.5, Color: pal.Faint})
		return
	}
	for i, line := range lines {
		p.Text(nx, y+13+float64(i)*4, line, page.TextStyle{Size: 7.5, Color: pal.Text})
	}
}
