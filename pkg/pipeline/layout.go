package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/report"
)

// GenerateLayout paginates rec with the theme and logger from opts. Extra
// report options in opts.ReportOptions are applied last.
func GenerateLayout(ctx context.Context, rec *inspection.Record, opts Options) (*report.Document, error) {
	ropts := []report.Option{
		report.WithTheme(opts.Theme),
		report.WithLogger(opts.Logger),
	}
	ropts = append(ropts, opts.ReportOptions...)
	return report.Generate(ctx, rec, ropts...)
}

// MetaOf extracts the cacheable description of doc.
func MetaOf(doc *report.Document) Meta {
	return Meta{
		ReportID:    doc.ReportID,
		FileName:    doc.FileName,
		GeneratedAt: doc.GeneratedAt,
		Date:        doc.Date,
		Score:       doc.Score,
		Pages:       doc.PageCount(),
		Degraded:    doc.Degraded,
	}
}

// reuse returns opts extended to regenerate the report described by meta:
// same report id, same generation time.
func (o Options) reuse(meta Meta) Options {
	at := meta.GeneratedAt
	o.ReportOptions = append(slices.Clip(o.ReportOptions),
		report.WithReportID(meta.ReportID),
		report.WithClock(func() time.Time { return at }),
	)
	return o
}
