package page

import "github.com/matzehuels/inspectreport/pkg/report/style"

// DefaultLineWidth is the stroke width of frames and rules in millimetres.
const DefaultLineWidth = 0.3

func colorPtr(c style.Color) *style.Color { return &c }

// FillRect draws a filled rectangle.
func (p *Page) FillRect(x, y, w, h float64, fill style.Color) {
	p.Ops = append(p.Ops, Rect{X: x, Y: y, W: w, H: h, Fill: colorPtr(fill)})
}

// StrokeRect draws a rectangle outline.
func (p *Page) StrokeRect(x, y, w, h float64, stroke style.Color, lineWidth float64) {
	p.Ops = append(p.Ops, Rect{X: x, Y: y, W: w, H: h, Stroke: colorPtr(stroke), LineWidth: lineWidth})
}

// FillStrokeRect draws a filled rectangle with an outline.
func (p *Page) FillStrokeRect(x, y, w, h float64, fill, stroke style.Color, lineWidth float64) {
	p.Ops = append(p.Ops, Rect{X: x, Y: y, W: w, H: h, Fill: colorPtr(fill), Stroke: colorPtr(stroke), LineWidth: lineWidth})
}

// RoundedRect draws a filled rectangle with rounded corners. A radius larger
// than half the shorter side is clamped.
func (p *Page) RoundedRect(x, y, w, h, radius float64, fill style.Color) {
	radius = min(radius, w/2, h/2)
	p.Ops = append(p.Ops, Rect{X: x, Y: y, W: w, H: h, Radius: radius, Fill: colorPtr(fill)})
}

// Rule draws a horizontal line.
func (p *Page) Rule(x1, x2, y float64, c style.Color, width float64) {
	p.Ops = append(p.Ops, Line{X1: x1, Y1: y, X2: x2, Y2: y, Color: c, Width: width})
}

// Line draws a straight segment.
func (p *Page) Line(x1, y1, x2, y2 float64, c style.Color, width float64) {
	p.Ops = append(p.Ops, Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c, Width: width})
}

// TextStyle describes a text run.
type TextStyle struct {
	Size  float64
	Bold  bool
	Color style.Color
	Align Align
}

// Text draws s with its baseline at y, anchored at x according to st.Align.
// Empty strings draw nothing.
func (p *Page) Text(x, y float64, s string, st TextStyle) {
	if s == "" {
		return
	}
	p.Ops = append(p.Ops, Text{X: x, Y: y, Value: s, Size: st.Size, Bold: st.Bold, Color: st.Color, Align: st.Align})
}

// Image draws img into the given box.
func (p *Page) Image(x, y, w, h float64, img Image) {
	img.X, img.Y, img.W, img.H = x, y, w, h
	p.Ops = append(p.Ops, img)
}
