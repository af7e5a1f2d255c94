package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/matzehuels/inspectreport/pkg/fonts"
	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/report/flow"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"
	"github.com/matzehuels/inspectreport/pkg/report/table"
)

// Cover geometry in millimetres from the top of the first page.
const (
	heroHeight     = 42
	titleBarHeight = 10
	cardTop        = 58
	cardHeight     = 48
	headingHeight  = 7
	blockGap       = 6
)

// Continuation labels of the cover tables.
const (
	SummaryLabel    = "Inspection Summary"
	CategoriesLabel = "Checklist Scores"
)

const notRecorded = "Not recorded"

var summaryColumns = []table.Column{
	{Title: "SECTION", X: 0},
	{Title: "CONDITION", X: 0.55},
	{Title: "PHOTOS", X: 0.75},
	{Title: "NOTES", X: 0.86},
}

var categoryColumns = []table.Column{
	{Title: "CATEGORY", X: 0},
	{Title: "ITEMS", X: 0.5, Align: page.AlignRight},
	{Title: "WARNINGS", X: 0.62, Align: page.AlignRight},
	{Title: "SCORE", X: 0.76, Align: page.AlignRight},
	{Title: "RESULT", X: 0.88},
}

// Cover draws the first page: hero, title bar, vehicle card, score panel and
// the two summary tables. The tables continue on further pages when they do
// not fit.
func Cover(c *flow.Cursor, th style.Theme, rec *inspection.Record, m Meta) {
	p := c.NewBarePage()
	hero(p, th, m)
	c.SetY(cardTop)

	y := c.Reserve(cardHeight, SummaryLabel)
	cw := th.ContentWidth()
	infoW, scoreW := cw*0.55, cw*0.42
	vehicleCard(c.Page(), th, th.Page.Margin, y, infoW, rec.Vehicle, m.Date)
	scorePanel(c.Page(), th, th.Page.Margin+cw-scoreW, y, scoreW, m.Score)
	c.Skip(blockGap)

	st := table.StyleFor(th, th.Layout.TableRowHeight)
	heading(c, th, "INSPECTION SUMMARY", "", st.HeaderHeight+st.RowHeight, SummaryLabel)
	table.Draw(c, th.Page.Margin, cw, SummaryTable(th, rec), st)

	if len(rec.Checklist) == 0 {
		return
	}
	c.Skip(blockGap)
	compact := table.StyleFor(th, th.Layout.CompactRowHeight)
	overall := inspection.ChecklistScore(rec.Checklist)
	right := fmt.Sprintf("Overall %d / 100 · %s", overall, style.ForScore(overall).Label())
	heading(c, th, "CHECKLIST SCORES", right, compact.HeaderHeight+compact.RowHeight, CategoriesLabel)
	table.Draw(c, th.Page.Margin, cw, CategoryTable(th, rec.Checklist), compact)
}

func hero(p *page.Page, th style.Theme, m Meta) {
	pal, g, b := th.Palette, th.Page, th.Brand
	p.FillRect(0, 0, g.Width, heroHeight, pal.Navy)

	x := g.Margin
	if b.Badge != "" {
		p.RoundedRect(x, 8, 22, 22, 3, pal.Accent)
		p.Text(x+11, 22, fonts.Truncate(b.Badge, 20, 11, true), page.TextStyle{Size: 11, Bold: true, Color: pal.OnDark, Align: page.AlignCenter})
		x += 27
	}
	p.Text(x, 17, b.Name, page.TextStyle{Size: 16, Bold: true, Color: pal.OnDark})
	p.Text(x, 24, b.Tagline, page.TextStyle{Size: 8, Color: pal.Faint})

	right := page.TextStyle{Size: 8, Color: pal.Faint, Align: page.AlignRight}
	p.Text(g.Width-g.Margin, 15, m.ReportID, right)
	p.Text(g.Width-g.Margin, 23, m.Date, right)

	p.FillRect(0, heroHeight, g.Width, titleBarHeight, pal.Accent)
	p.Text(g.Width/2, middle(heroHeight, titleBarHeight, 9), b.Title,
		page.TextStyle{Size: 9, Bold: true, Color: pal.OnDark, Align: page.AlignCenter})
}

func vehicleCard(p *page.Page, th style.Theme, x, y, w float64, v inspection.Vehicle, date string) {
	pal := th.Palette
	p.FillStrokeRect(x, y, w, cardHeight, pal.Surface, pal.Border, page.DefaultLineWidth)

	p.Text(x+4, y+7, "VEHICLE", page.TextStyle{Size: 7, Bold: true, Color: pal.Muted})
	title := v.Title()
	if title == "" {
		title = "Unspecified vehicle"
	}
	p.Text(x+4, y+15, fonts.Truncate(title, w-8, 13, true), page.TextStyle{Size: 13, Bold: true, Color: pal.Text})

	rows := [][2]string{
		{"VIN / CHASSIS", orDefault(v.VIN, "Not provided")},
		{"MILEAGE", mileage(v.Mileage)},
		{"INSPECTOR", orDefault(v.Inspector, notRecorded)},
		{"INSPECTION DATE", date},
	}
	for i, r := range rows {
		ry := y + 22 + float64(i)*6.5
		p.Text(x+4, ry, r[0], page.TextStyle{Size: 6.5, Bold: true, Color: pal.Muted})
		p.Text(x+4, ry+4, fonts.Truncate(r[1], w-8, 7.5, false), page.TextStyle{Size: 7.5, Color: pal.Text})
	}
}

func scorePanel(p *page.Page, th style.Theme, x, y, w float64, score int) {
	pal := th.Palette
	status := style.ForScore(score)
	p.FillRect(x, y, w, cardHeight, pal.ForStatus(status))

	cx := x + w/2
	ink := func(size float64, bold bool) page.TextStyle {
		return page.TextStyle{Size: size, Bold: bold, Color: pal.OnDark, Align: page.AlignCenter}
	}
	p.Text(cx, y+10, "CONDITION SCORE", ink(7, true))
	p.Text(cx, y+30, strconv.Itoa(score), ink(36, true))
	p.Text(cx, y+38, "/ 100", ink(8, false))
	p.Text(cx, y+45, strings.ToUpper(status.Verdict()), ink(7.5, true))
}

// heading draws a bold block title kept together with the block below it.
func heading(c *flow.Cursor, th style.Theme, title, right string, next float64, label string) {
	pal := th.Palette
	y := c.ReserveKeep(headingHeight, next, label)
	base := y + headingHeight - 2
	c.Page().Text(th.Page.Margin, base, title, page.TextStyle{Size: 9, Bold: true, Color: pal.Text})
	c.Page().Text(th.Page.Margin+th.ContentWidth(), base, right, page.TextStyle{Size: 7.5, Color: pal.Muted, Align: page.AlignRight})
}

// SummaryTable lists every section with its condition, photo count and a
// notes preview. Sections without photos keep their row.
func SummaryTable(th style.Theme, rec *inspection.Record) table.Table {
	pal := th.Palette
	rows := make([][]table.Cell, 0, len(rec.Sections))
	for _, s := range rec.Sections {
		notes := strings.Join(strings.Fields(s.Notes), " ")
		rows = append(rows, []table.Cell{
			{Text: s.Name},
			table.Colored(s.Condition.Label(), pal.ForCondition(s.Condition), true),
			table.Colored(strconv.Itoa(len(s.Photos)), pal.Muted, false),
			table.Colored(orDefault(notes, "-"), pal.Muted, false),
		})
	}
	return table.Table{Columns: summaryColumns, Rows: rows, Label: SummaryLabel}
}

// CategoryTable lists every checklist category with its score and result.
func CategoryTable(th style.Theme, cats []inspection.ChecklistCategory) table.Table {
	pal := th.Palette
	rows := make([][]table.Cell, 0, len(cats))
	for _, cat := range cats {
		score := inspection.CategoryScore(cat)
		status := style.ForScore(score)
		color := pal.ForStatus(status)
		warn := table.Cell{Text: strconv.Itoa(cat.WarnCount())}
		if cat.WarnCount() > 0 {
			warn = table.Colored(warn.Text, pal.Bad, true)
		}
		rows = append(rows, []table.Cell{
			{Text: cat.Name},
			{Text: strconv.Itoa(len(cat.Items()))},
			warn,
			table.Colored(strconv.Itoa(score), color, true),
			table.Colored(status.Label(), color, true),
		})
	}
	return table.Table{Columns: categoryColumns, Rows: rows, Label: CategoriesLabel}
}

func mileage(km int) string {
	if km <= 0 {
		return notRecorded
	}
	return humanize.Comma(int64(km)) + " km"
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
