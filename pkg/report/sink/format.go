package sink

import (
	"context"
	"strings"

	"github.com/matzehuels/inspectreport/pkg/report"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// Format is an output format name.
type Format string

const (
	PDF  Format = "pdf"
	PNG  Format = "png"
	SVG  Format = "svg"
	JSON Format = "json"
)

// Formats lists every supported format, default first.
var Formats = []Format{PDF, PNG, SVG, JSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case PDF, PNG, SVG, JSON:
		return f, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q (use pdf, png, svg or json)", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case PDF:
		return "application/pdf"
	case PNG:
		return "image/png"
	case SVG:
		return "image/svg+xml"
	default:
		return "application/json"
	}
}

// Render serializes doc in format f with default options.
func Render(ctx context.Context, doc *report.Document, f Format) ([]byte, error) {
	switch f {
	case PDF:
		return RenderPDF(ctx, doc)
	case PNG:
		return RenderPNG(doc)
	case SVG:
		return RenderSVG(doc), nil
	case JSON:
		return RenderJSON(doc)
	}
	return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q", f)
}

// FileName returns the document's file name with the extension of f.
func FileName(doc *report.Document, f Format) string {
	return strings.TrimSuffix(doc.FileName, PDF.Ext()) + f.Ext()
}
