package report

import (
	"fmt"

	"github.com/matzehuels/inspectreport/pkg/fonts"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

// FooterMeta is the data stamped into every footer.
type FooterMeta struct {
	Theme style.Theme
	Date  string
}

const footerSize = 6.5

// StampFooter returns a copy of p with the footer band appended: the
// attribution, the report date and "Page i of N". p is not modified.
func StampFooter(p page.Page, total int, m FooterMeta) page.Page {
	out := *p.Clone()
	th := m.Theme
	pal, g := th.Palette, th.Page
	band := th.Layout.FooterBand
	y := g.Height - band

	out.FillRect(0, y, g.Width, band, pal.Navy)
	base := y + (band+fonts.Ascent(footerSize))/2
	ts := page.TextStyle{Size: footerSize, Color: pal.Muted}

	pageNo := fmt.Sprintf("Page %d of %d", p.Index+1, total)
	right := g.Width - g.Margin
	ts.Align = page.AlignRight
	out.Text(right, base, pageNo, ts)

	ts.Align = page.AlignCenter
	out.Text(g.Width/2, base, m.Date, ts)

	left := th.ContentWidth()/2 - fonts.Width(m.Date, footerSize, false)/2 - 4
	ts.Align = page.AlignLeft
	out.Text(g.Margin, base, fonts.Truncate(th.Brand.Attribution, left, footerSize, false), ts)
	return out
}

// StampFooters maps StampFooter over pages in order.
func StampFooters(pages []*page.Page, m FooterMeta) []page.Page {
	out := make([]page.Page, len(pages))
	for i, p := range pages {
		out[i] = StampFooter(*p, len(pages), m)
	}
	return out
}
