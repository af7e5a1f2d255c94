package sink

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/inspectreport/pkg/report"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

type jsonOutput struct {
	ReportID    string               `json:"report_id"`
	FileName    string               `json:"file_name"`
	GeneratedAt time.Time            `json:"generated_at"`
	Date        string               `json:"date"`
	Score       int                  `json:"score"`
	Width       float64              `json:"width"`
	Height      float64              `json:"height"`
	States      []string             `json:"states"`
	Degraded    []report.Degradation `json:"degraded,omitempty"`
	Pages       []jsonPage           `json:"pages"`
}

type jsonPage struct {
	Number int      `json:"number"`
	Ops    []jsonOp `json:"ops"`
}

// jsonOp flattens every op kind into one record. Photos are summarised by
// key and pixel size; pixel data is not exported.
type jsonOp struct {
	Kind      string       `json:"kind"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	W         float64      `json:"w,omitempty"`
	H         float64      `json:"h,omitempty"`
	X2        float64      `json:"x2,omitempty"`
	Y2        float64      `json:"y2,omitempty"`
	Radius    float64      `json:"radius,omitempty"`
	Fill      *style.Color `json:"fill,omitempty"`
	Stroke    *style.Color `json:"stroke,omitempty"`
	LineWidth float64      `json:"line_width,omitempty"`
	Text      string       `json:"text,omitempty"`
	Size      float64      `json:"size,omitempty"`
	Bold      bool         `json:"bold,omitempty"`
	Align     string       `json:"align,omitempty"`
	Key       uint64       `json:"key,omitempty"`
	PixelsW   int          `json:"pixels_w,omitempty"`
	PixelsH   int          `json:"pixels_h,omitempty"`
}

var alignNames = map[page.Align]string{
	page.AlignLeft:   "left",
	page.AlignCenter: "center",
	page.AlignRight:  "right",
}

// RenderJSON dumps the laid-out document: metadata plus every draw op.
func RenderJSON(doc *report.Document) ([]byte, error) {
	out := jsonOutput{
		ReportID:    doc.ReportID,
		FileName:    doc.FileName,
		GeneratedAt: doc.GeneratedAt,
		Date:        doc.Date,
		Score:       doc.Score,
		Width:       doc.Theme.Page.Width,
		Height:      doc.Theme.Page.Height,
		Degraded:    doc.Degraded,
		Pages:       make([]jsonPage, 0, len(doc.Pages)),
	}
	for _, s := range doc.States {
		out.States = append(out.States, s.String())
	}
	for _, p := range doc.Pages {
		jp := jsonPage{Number: p.Index + 1, Ops: make([]jsonOp, 0, len(p.Ops))}
		for _, op := range p.Ops {
			jp.Ops = append(jp.Ops, toJSONOp(op))
		}
		out.Pages = append(out.Pages, jp)
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONOp(op page.Op) jsonOp {
	switch o := op.(type) {
	case page.Rect:
		return jsonOp{Kind: "rect", X: o.X, Y: o.Y, W: o.W, H: o.H, Radius: o.Radius, Fill: o.Fill, Stroke: o.Stroke, LineWidth: o.LineWidth}
	case page.Line:
		c := o.Color
		return jsonOp{Kind: "line", X: o.X1, Y: o.Y1, X2: o.X2, Y2: o.Y2, Stroke: &c, LineWidth: o.Width}
	case page.Text:
		c := o.Color
		return jsonOp{Kind: "text", X: o.X, Y: o.Y, Text: o.Value, Size: o.Size, Bold: o.Bold, Fill: &c, Align: alignNames[o.Align]}
	case page.Image:
		j := jsonOp{Kind: "image", X: o.X, Y: o.Y, W: o.W, H: o.H, Key: o.Key}
		if o.Img != nil {
			b := o.Img.Bounds()
			j.PixelsW, j.PixelsH = b.Dx(), b.Dy()
		}
		return j
	}
	return jsonOp{Kind: "unknown"}
}
