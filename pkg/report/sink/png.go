package sink

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/inspectreport/pkg/fonts"
	"github.com/matzehuels/inspectreport/pkg/report"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64 // pixels per millimetre
	gap   float64 // millimetres between stacked pages
	pages []int
}

// WithScale sets the resolution in pixels per millimetre (default 3, about
// 76 dpi).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPages restricts output to the given zero-based page indices.
func WithPages(indices ...int) PNGOption {
	return func(r *pngRenderer) { r.pages = indices }
}

// WithPageGap sets the gap between stacked pages in millimetres.
func WithPageGap(mm float64) PNGOption {
	return func(r *pngRenderer) { r.gap = max(0, mm) }
}

var backdrop = style.RGB(203, 213, 225)

// RenderPNG rasterizes the selected pages (all by default) stacked
// vertically into one image.
func RenderPNG(doc *report.Document, opts ...PNGOption) ([]byte, error) {
	img, err := Rasterize(doc, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errs.Wrap(errs.ErrCodeReportFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Rasterize draws the selected pages into an image.
func Rasterize(doc *report.Document, opts ...PNGOption) (image.Image, error) {
	r := pngRenderer{scale: 3, gap: 6}
	for _, opt := range opts {
		opt(&r)
	}
	pages, err := selectPages(doc, r.pages)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "document has no pages")
	}

	g := doc.Theme.Page
	stride := g.Height + r.gap
	w := int(g.Width*r.scale + 0.5)
	h := int((stride*float64(len(pages))-r.gap)*r.scale + 0.5)

	dc := gg.NewContext(w, h)
	setColor(dc, backdrop)
	dc.Clear()

	rz := &raster{dc: dc, scale: r.scale, faces: make(map[faceKey]font.Face), images: make(map[imageKey]image.Image)}
	defer rz.close()
	for i, p := range pages {
		rz.top = float64(i) * stride
		setColor(dc, style.RGB(255, 255, 255))
		dc.DrawRectangle(0, rz.py(0), float64(w), g.Height*r.scale)
		dc.Fill()
		for _, op := range p.Ops {
			if err := rz.draw(op); err != nil {
				return nil, errs.Wrap(errs.ErrCodeReportFailed, err, "rasterize page %d", p.Index+1)
			}
		}
	}
	return dc.Image(), nil
}

func selectPages(doc *report.Document, indices []int) ([]page.Page, error) {
	if len(indices) == 0 {
		return doc.Pages, nil
	}
	out := make([]page.Page, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(doc.Pages) {
			return nil, errs.New(errs.ErrCodeInvalidInput, "page %d out of range [1,%d]", i+1, len(doc.Pages))
		}
		out = append(out, doc.Pages[i])
	}
	return out, nil
}

type faceKey struct {
	bold bool
	px   float64
}

type imageKey struct {
	key  uint64
	w, h int
}

type raster struct {
	dc     *gg.Context
	scale  float64
	top    float64 // millimetre offset of the current page
	faces  map[faceKey]font.Face
	images map[imageKey]image.Image
}

func (r *raster) px(v float64) float64 { return v * r.scale }
func (r *raster) py(v float64) float64 { return (r.top + v) * r.scale }

func (r *raster) close() {
	for _, f := range r.faces {
		_ = f.Close()
	}
}

func (r *raster) draw(op page.Op) error {
	dc := r.dc
	switch o := op.(type) {
	case page.Rect:
		path := func() {
			if o.Radius > 0 {
				dc.DrawRoundedRectangle(r.px(o.X), r.py(o.Y), r.px(o.W), r.px(o.H), r.px(o.Radius))
				return
			}
			dc.DrawRectangle(r.px(o.X), r.py(o.Y), r.px(o.W), r.px(o.H))
		}
		if o.Fill != nil {
			path()
			setColor(dc, *o.Fill)
			dc.Fill()
		}
		if o.Stroke != nil {
			path()
			setColor(dc, *o.Stroke)
			dc.SetLineWidth(max(1, r.px(o.LineWidth)))
			dc.Stroke()
		}
	case page.Line:
		dc.DrawLine(r.px(o.X1), r.py(o.Y1), r.px(o.X2), r.py(o.Y2))
		setColor(dc, o.Color)
		dc.SetLineWidth(max(1, r.px(o.Width)))
		dc.Stroke()
	case page.Text:
		face, err := r.face(o.Bold, o.Size)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		setColor(dc, o.Color)
		ax := 0.0
		switch o.Align {
		case page.AlignCenter:
			ax = 0.5
		case page.AlignRight:
			ax = 1
		}
		dc.DrawStringAnchored(o.Value, r.px(o.X), r.py(o.Y), ax, 0)
	case page.Image:
		if o.Img == nil {
			return nil
		}
		w, h := int(r.px(o.W)+0.5), int(r.px(o.H)+0.5)
		if w <= 0 || h <= 0 {
			return nil
		}
		k := imageKey{o.Key, w, h}
		img, ok := r.images[k]
		if !ok {
			img = imaging.Resize(o.Img, w, h, imaging.Linear)
			if o.Key != 0 {
				r.images[k] = img
			}
		}
		dc.DrawImage(img, int(r.px(o.X)+0.5), int(r.py(o.Y)+0.5))
	default:
		return fmt.Errorf("unknown op %T", op)
	}
	return nil
}

func (r *raster) face(bold bool, size float64) (font.Face, error) {
	k := faceKey{bold, r.px(size * fonts.PointMM)}
	if f, ok := r.faces[k]; ok {
		return f, nil
	}
	f, err := fonts.Face(bold, k.px)
	if err != nil {
		return nil, err
	}
	r.faces[k] = f
	return f, nil
}

func setColor(dc *gg.Context, c style.Color) {
	dc.SetRGB255(int(c.R), int(c.G), int(c.B))
}
