package sink

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/inspectreport/pkg/fonts"
	"github.com/matzehuels/inspectreport/pkg/report"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	gap     float64
	quality int

	pal      style.Palette
	embedded map[uint64]bool // photos present in <defs>
}

// WithSVGPageGap sets the gap between stacked pages in millimetres.
func WithSVGPageGap(mm float64) SVGOption {
	return func(r *svgRenderer) { r.gap = max(0, mm) }
}

// WithJPEGQuality sets the quality of embedded photos (1-100).
func WithJPEGQuality(q int) SVGOption {
	return func(r *svgRenderer) {
		if q >= 1 && q <= 100 {
			r.quality = q
		}
	}
}

// RenderSVG writes every page stacked vertically in one SVG whose user unit
// is the millimetre. Identical photos are embedded once and referenced.
func RenderSVG(doc *report.Document, opts ...SVGOption) []byte {
	r := svgRenderer{gap: 6, quality: 85, pal: doc.Theme.Palette, embedded: make(map[uint64]bool)}
	for _, opt := range opts {
		opt(&r)
	}

	g := doc.Theme.Page
	stride := g.Height + r.gap
	height := g.Height
	if n := len(doc.Pages); n > 1 {
		height = stride*float64(n) - r.gap
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %s %s" width="%smm" height="%smm">`+"\n",
		num(g.Width), num(height), num(g.Width), num(height))
	fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(doc.ReportID))
	r.renderDefs(&buf, doc)
	fmt.Fprintf(&buf, `  <g font-family="%s">`+"\n", fonts.FontFamily)
	for i, p := range doc.Pages {
		fmt.Fprintf(&buf, `  <g id="page-%d" transform="translate(0 %s)">`+"\n", p.Index+1, num(float64(i)*stride))
		fmt.Fprintf(&buf, `    <rect width="%s" height="%s" fill="#ffffff"/>`+"\n", num(g.Width), num(g.Height))
		for _, op := range p.Ops {
			r.renderOp(&buf, op)
		}
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

// renderDefs embeds each distinct photo once as a unit-square image. Photos
// that fail to encode are left out and drawn as empty frames by renderOp.
func (r *svgRenderer) renderDefs(buf *bytes.Buffer, doc *report.Document) {
	seen := make(map[uint64]bool)
	var started bool
	for _, p := range doc.Pages {
		for _, im := range p.Images() {
			if im.Img == nil || seen[im.Key] {
				continue
			}
			seen[im.Key] = true
			uri, err := dataURI(im.Img, r.quality)
			if err != nil {
				continue
			}
			r.embedded[im.Key] = true
			if !started {
				buf.WriteString("  <defs>\n")
				started = true
			}
			fmt.Fprintf(buf, `    <image id="%s" width="1" height="1" preserveAspectRatio="none" xlink:href="%s"/>`+"\n", imageID(im.Key), uri)
		}
	}
	if started {
		buf.WriteString("  </defs>\n")
	}
}

func (r *svgRenderer) renderOp(buf *bytes.Buffer, op page.Op) {
	switch o := op.(type) {
	case page.Rect:
		fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s"`, num(o.X), num(o.Y), num(o.W), num(o.H))
		if o.Radius > 0 {
			fmt.Fprintf(buf, ` rx="%s"`, num(o.Radius))
		}
		fmt.Fprintf(buf, ` fill="%s"`, paint(o.Fill))
		if o.Stroke != nil {
			fmt.Fprintf(buf, ` stroke="%s" stroke-width="%s"`, o.Stroke.Hex(), num(o.LineWidth))
		}
		buf.WriteString("/>\n")
	case page.Line:
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			num(o.X1), num(o.Y1), num(o.X2), num(o.Y2), o.Color.Hex(), num(o.Width))
	case page.Text:
		anchor := "start"
		switch o.Align {
		case page.AlignCenter:
			anchor = "middle"
		case page.AlignRight:
			anchor = "end"
		}
		weight := ""
		if o.Bold {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(buf, `    <text x="%s" y="%s" font-size="%s" fill="%s" text-anchor="%s"%s>%s</text>`+"\n",
			num(o.X), num(o.Y), num(o.Size*fonts.PointMM), o.Color.Hex(), anchor, weight, escapeXML(o.Value))
	case page.Image:
		if o.Img == nil {
			return
		}
		if !r.embedded[o.Key] {
			fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
				num(o.X), num(o.Y), num(o.W), num(o.H), r.pal.Surface.Hex(), r.pal.Border.Hex(), num(page.DefaultLineWidth))
			return
		}
		fmt.Fprintf(buf, `    <use xlink:href="#%s" transform="translate(%s %s) scale(%s %s)"/>`+"\n",
			imageID(o.Key), num(o.X), num(o.Y), num(o.W), num(o.H))
	}
}

func imageID(key uint64) string {
	return fmt.Sprintf("img-%016x", key)
}

func dataURI(img image.Image, quality int) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func paint(c *style.Color) string {
	if c == nil {
		return "none"
	}
	return c.Hex()
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
