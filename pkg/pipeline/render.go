package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/inspectreport/pkg/report"
	"github.com/matzehuels/inspectreport/pkg/report/sink"
)

// Render generates output artifacts in the requested formats. Either every
// format renders or an error is returned; no partial set is produced.
func Render(ctx context.Context, doc *report.Document, opts Options) (map[sink.Format][]byte, error) {
	artifacts := make(map[sink.Format][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var data []byte
		var err error

		switch format {
		case sink.PNG:
			data, err = sink.RenderPNG(doc, sink.WithScale(opts.Scale))
		case sink.PDF:
			data, err = sink.RenderPDF(ctx, doc, sink.WithKeywords(pdfKeywords(doc)...))
		default:
			data, err = sink.Render(ctx, doc, format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func pdfKeywords(doc *report.Document) []string {
	return []string{"vehicle inspection", doc.ReportID, doc.Date}
}
