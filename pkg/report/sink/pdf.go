package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wudi/pdfkit/builder"
	"github.com/wudi/pdfkit/contentstream"
	"github.com/wudi/pdfkit/ir/semantic"
	"github.com/wudi/pdfkit/writer"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/matzehuels/inspectreport/pkg/buildinfo"
	"github.com/matzehuels/inspectreport/pkg/fonts"
	"github.com/matzehuels/inspectreport/pkg/report"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// ptPerMM converts millimetres to PDF points.
const ptPerMM = 72 / 25.4

// kappa places Bézier control points for quarter circles.
const kappa = 0.5522847498

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	compress bool
	keywords []string
}

// WithCompression toggles Flate compression of content streams (default on).
func WithCompression(on bool) PDFOption {
	return func(r *pdfRenderer) { r.compress = on }
}

// WithKeywords sets the document keywords.
func WithKeywords(kw ...string) PDFOption {
	return func(r *pdfRenderer) { r.keywords = kw }
}

// RenderPDF renders doc as a PDF with one PDF page per report page.
// Output is deterministic for a given document.
func RenderPDF(ctx context.Context, doc *report.Document, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{compress: true}
	for _, opt := range opts {
		opt(&r)
	}

	th := doc.Theme
	b := builder.NewBuilder()
	b.RegisterFont(fonts.Regular, &semantic.Font{Subtype: "Type1", BaseFont: fonts.Regular, Encoding: "WinAnsiEncoding"})
	b.RegisterFont(fonts.Bold, &semantic.Font{Subtype: "Type1", BaseFont: fonts.Bold, Encoding: "WinAnsiEncoding"})
	b.SetInfo(&semantic.DocumentInfo{
		Title:    fmt.Sprintf("%s %s", th.Brand.Title, doc.ReportID),
		Author:   th.Brand.Name,
		Subject:  doc.Date,
		Creator:  th.Brand.Name,
		Producer: buildinfo.Producer(),
		Keywords: r.keywords,
	})

	pw := &pdfPage{
		height: th.Page.Height,
		enc:    encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
		images: make(map[uint64]*semantic.Image),
	}
	for _, p := range doc.Pages {
		pw.pb = b.NewPage(th.Page.Width*ptPerMM, th.Page.Height*ptPerMM)
		for _, op := range p.Ops {
			if err := pw.draw(op); err != nil {
				return nil, errs.Wrap(errs.ErrCodeReportFailed, err, "pdf page %d", p.Index+1)
			}
		}
		pw.pb.Finish()
	}

	built, err := b.Build()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeReportFailed, err, "build pdf")
	}
	cfg := writer.Config{Deterministic: true}
	if r.compress {
		cfg.ContentFilter = writer.FilterFlate
	}
	var buf bytes.Buffer
	if err := (&writer.WriterBuilder{}).Build().Write(ctx, built, &buf, cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeReportFailed, err, "write pdf")
	}
	return buf.Bytes(), nil
}

// pdfPage draws ops onto the current page builder.
type pdfPage struct {
	pb     builder.PageBuilder
	height float64
	enc    *encoding.Encoder
	images map[uint64]*semantic.Image
}

func (w *pdfPage) x(v float64) float64 { return v * ptPerMM }

// y flips a top-left millimetre offset into a bottom-left point offset.
func (w *pdfPage) y(v float64) float64 { return (w.height - v) * ptPerMM }

func (w *pdfPage) draw(op page.Op) error {
	switch o := op.(type) {
	case page.Rect:
		w.rect(o)
	case page.Line:
		w.pb.DrawLine(w.x(o.X1), w.y(o.Y1), w.x(o.X2), w.y(o.Y2), builder.LineOptions{
			StrokeColor: pdfColor(o.Color),
			LineWidth:   o.Width * ptPerMM,
		})
	case page.Text:
		return w.text(o)
	case page.Image:
		w.image(o)
	}
	return nil
}

func (w *pdfPage) rect(o page.Rect) {
	opts := builder.RectOptions{LineWidth: o.LineWidth * ptPerMM}
	if o.Fill != nil {
		opts.Fill, opts.FillColor = true, pdfColor(*o.Fill)
	}
	if o.Stroke != nil {
		opts.Stroke, opts.StrokeColor = true, pdfColor(*o.Stroke)
		if opts.LineWidth == 0 {
			opts.LineWidth = page.DefaultLineWidth * ptPerMM
		}
	}
	if !opts.Fill && !opts.Stroke {
		return
	}
	if o.Radius > 0 {
		w.pb.DrawPath(roundedPath(w.x(o.X), w.y(o.Y+o.H), o.W*ptPerMM, o.H*ptPerMM, o.Radius*ptPerMM), opts)
		return
	}
	w.pb.DrawRectangle(w.x(o.X), w.y(o.Y+o.H), o.W*ptPerMM, o.H*ptPerMM, opts)
}

func (w *pdfPage) text(o page.Text) error {
	value := fonts.Printable(o.Value)
	if value == "" {
		return nil
	}
	x := o.X
	switch o.Align {
	case page.AlignCenter:
		x -= fonts.Width(value, o.Size, o.Bold) / 2
	case page.AlignRight:
		x -= fonts.Width(value, o.Size, o.Bold)
	}
	encoded, err := w.enc.String(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", value, err)
	}
	face := fonts.Regular
	if o.Bold {
		face = fonts.Bold
	}
	w.pb.DrawText(encoded, w.x(x), w.y(o.Y), builder.TextOptions{
		Font:     face,
		FontSize: o.Size,
		Color:    pdfColor(o.Color),
	})
	return nil
}

func (w *pdfPage) image(o page.Image) {
	if o.Img == nil {
		return
	}
	img, ok := w.images[o.Key]
	if !ok || o.Key == 0 {
		img = builder.FromImage(o.Img)
		if o.Key != 0 {
			w.images[o.Key] = img
		}
	}
	w.pb.DrawImage(img, w.x(o.X), w.y(o.Y+o.H), o.W*ptPerMM, o.H*ptPerMM, builder.ImageOptions{Interpolate: true})
}

// roundedPath returns a closed rounded rectangle with its lower-left corner at
// (x, y) in PDF space.
func roundedPath(x, y, w, h, r float64) *contentstream.Path {
	r = min(r, w/2, h/2)
	k := r * kappa
	pt := func(t contentstream.PathPointType, px, py float64) contentstream.PathPoint {
		return contentstream.PathPoint{Type: t, X: px, Y: py}
	}
	curve := func(c1x, c1y, c2x, c2y, px, py float64) contentstream.PathPoint {
		return contentstream.PathPoint{
			Type: contentstream.PathCurveTo, X: px, Y: py,
			Control1X: c1x, Control1Y: c1y, Control2X: c2x, Control2Y: c2y,
		}
	}
	return &contentstream.Path{Subpaths: []contentstream.Subpath{{
		Points: []contentstream.PathPoint{
			pt(contentstream.PathMoveTo, x+r, y),
			pt(contentstream.PathLineTo, x+w-r, y),
			curve(x+w-r+k, y, x+w, y+r-k, x+w, y+r),
			pt(contentstream.PathLineTo, x+w, y+h-r),
			curve(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h),
			pt(contentstream.PathLineTo, x+r, y+h),
			curve(x+r-k, y+h, x, y+h-r+k, x, y+h-r),
			pt(contentstream.PathLineTo, x, y+r),
			curve(x, y+r-k, x+r-k, y, x+r, y),
		},
		Closed: true,
	}}}
}

func pdfColor(c style.Color) builder.Color {
	r, g, b := c.Floats()
	return builder.Color{R: r, G: g, B: b, A: 1}
}
