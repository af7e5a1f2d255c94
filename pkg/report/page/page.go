// Package page is the in-memory drawing surface of a report.
//
// A [Page] is an ordered list of draw operations in millimetres with the
// origin at the top-left corner. Pages know nothing about pagination or
// scores: every primitive takes explicit geometry and colors and only
// appends to its own page. Sinks translate the operations into PDF, PNG or
// SVG.
package page

import (
	"image"

	"github.com/matzehuels/inspectreport/pkg/report/style"
)

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Op is one draw operation. The concrete types are Rect, Line, Text and Image.
type Op interface {
	op()
}

// Rect is a rectangle, optionally rounded. A nil Fill or Stroke is not painted.
type Rect struct {
	X, Y, W, H float64
	Radius     float64
	Fill       *style.Color
	Stroke     *style.Color
	LineWidth  float64
}

// Line is a straight stroked segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          style.Color
	Width          float64
}

// Text is a single line of text. Y is the baseline.
type Text struct {
	X, Y  float64
	Value string
	Size  float64 // points
	Bold  bool
	Color style.Color
	Align Align
}

// Image draws a decoded raster into a box. Key identifies the source payload
// so sinks can embed identical images once.
type Image struct {
	X, Y, W, H float64
	Key        uint64
	Img        image.Image
}

func (Rect) op()  {}
func (Line) op()  {}
func (Text) op()  {}
func (Image) op() {}

// Page is one finished or in-progress page.
type Page struct {
	Index int // zero-based
	Ops   []Op
}

// New returns an empty page.
func New(index int) *Page {
	return &Page{Index: index}
}

// Clone returns a page with a copy of the op list.
func (p *Page) Clone() *Page {
	ops := make([]Op, len(p.Ops))
	copy(ops, p.Ops)
	return &Page{Index: p.Index, Ops: ops}
}

// Texts returns the text of every Text op in drawing order.
func (p *Page) Texts() []string {
	var out []string
	for _, o := range p.Ops {
		if t, ok := o.(Text); ok {
			out = append(out, t.Value)
		}
	}
	return out
}

// Images returns every Image op in drawing order.
func (p *Page) Images() []Image {
	var out []Image
	for _, o := range p.Ops {
		if im, ok := o.(Image); ok {
			out = append(out, im)
		}
	}
	return out
}

// Bounds returns the lowest and highest y reached by any op.
func (p *Page) Bounds() (top, bottom float64) {
	first := true
	extend := func(a, b float64) {
		if first {
			top, bottom, first = a, b, false
			return
		}
		top, bottom = min(top, a), max(bottom, b)
	}
	for _, o := range p.Ops {
		switch v := o.(type) {
		case Rect:
			extend(v.Y, v.Y+v.H)
		case Line:
			extend(min(v.Y1, v.Y2), max(v.Y1, v.Y2))
		case Text:
			extend(v.Y, v.Y)
		case Image:
			extend(v.Y, v.Y+v.H)
		}
	}
	return top, bottom
}
