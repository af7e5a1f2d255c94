// Package report assembles an inspection record into a finished, paginated
// document.
//
// [Generate] walks a fixed sequence of states: the cover, the photographed
// sections, the checklist and finally the footer pass, which stamps
// "Page i of N" on every page once the page count is known. The output is a
// [Document]: an ordered list of pages made of draw operations that the sink
// packages serialize to PDF, PNG, SVG or JSON.
//
// One call is synchronous and single-threaded over the record it is given;
// the record must not be modified until Generate returns. Independent calls
// may run concurrently.
//
// # Failure model
//
// A photo that cannot be decoded is drawn as a placeholder and reported in
// [Document.Degraded]; generation continues. Every other failure (invalid
// record, invalid theme, cancelled context, a block larger than a page)
// aborts the attempt with a REPORT_GENERATION_FAILED error and no document.
package report

import (
	"context"
	"time"

	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/report/compose"
	"github.com/matzehuels/inspectreport/pkg/report/flow"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// State is a step of the assembler.
type State int

const (
	StateCover State = iota
	StatePhotoSections
	StateChecklist
	StateFooterPass
	StateDone
)

var stateNames = [...]string{"cover", "photo_sections", "checklist", "footer_pass", "done"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Degradation is a photo that was drawn as a placeholder.
type Degradation = compose.Degradation

// Document is a finished report.
type Document struct {
	ReportID    string
	FileName    string
	GeneratedAt time.Time
	Date        string // display form of the inspection date
	Score       int
	Theme       style.Theme
	Pages       []page.Page
	Degraded    []Degradation

	// States is the trace of states the assembler went through.
	States []State
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Generate lays out rec into a document.
func Generate(ctx context.Context, rec *inspection.Record, opts ...Option) (*Document, error) {
	cfg := newConfig(opts)
	th := cfg.theme

	if rec == nil {
		return nil, errs.Fatal(errs.New(errs.ErrCodeInvalidInput, "nil record"), "generate report")
	}
	if err := th.Validate(); err != nil {
		return nil, errs.Fatal(err, "invalid theme")
	}
	if err := rec.Validate(); err != nil {
		return nil, errs.Fatal(err, "invalid record")
	}

	start := time.Now()
	now := cfg.clock()
	id := cfg.reportID
	if id == "" {
		id = NewReportID(th.Brand.Prefix, now, cfg.rand)
	}
	doc := &Document{
		ReportID:    id,
		GeneratedAt: now,
		Date:        DisplayDate(rec.Vehicle, now),
		Score:       score(rec, cfg.scorer),
		Theme:       th,
	}
	doc.FileName = FileName(th.Brand.Prefix, rec.Vehicle, doc.ReportID, now)

	logger := cfg.logger.With("report", doc.ReportID)
	cfg.hooks.OnGenerateStart(ctx, doc.ReportID)
	fail := func(err error) (*Document, error) {
		err = errs.Fatal(err, "generate %s", doc.ReportID)
		cfg.hooks.OnGenerateComplete(ctx, doc.ReportID, 0, time.Since(start), err)
		logger.Error("report generation failed", "err", err)
		return nil, err
	}

	cur := flow.New(th.Layout.ContentTop, th.Bottom(), compose.RunningHeader(th))
	meta := compose.Meta{ReportID: doc.ReportID, Date: doc.Date, Score: doc.Score}

	for st := StateCover; st < StateDone; st++ {
		if err := ctx.Err(); err != nil {
			return fail(errs.Wrap(errs.ErrCodeTimeout, err, "cancelled before %s", st))
		}
		doc.States = append(doc.States, st)
		cfg.hooks.OnState(ctx, doc.ReportID, st.String())
		logger.Debug("enter state", "state", st, "pages", len(cur.Pages()))

		switch st {
		case StateCover:
			compose.Cover(cur, th, rec, meta)
		case StatePhotoSections:
			doc.Degraded = compose.PhotoSections(cur, th, rec.Sections, cfg.maxPixels)
			for _, d := range doc.Degraded {
				cfg.hooks.OnDegraded(ctx, doc.ReportID, d.Section, d.Photo, d.Reason)
				logger.Warn("photo replaced by placeholder", "err", d.Err())
			}
		case StateChecklist:
			compose.Checklist(cur, th, rec.Checklist)
		case StateFooterPass:
			if err := cur.Err(); err != nil {
				return fail(err)
			}
			doc.Pages = StampFooters(cur.Pages(), FooterMeta{Theme: th, Date: doc.Date})
		}
	}
	doc.States = append(doc.States, StateDone)

	elapsed := time.Since(start)
	cfg.hooks.OnGenerateComplete(ctx, doc.ReportID, len(doc.Pages), elapsed, nil)
	logger.Info("generated report",
		"pages", len(doc.Pages),
		"degraded", len(doc.Degraded),
		"duration", elapsed)
	return doc, nil
}

func score(rec *inspection.Record, s inspection.Scorer) int {
	if rec.Score != nil {
		return min(100, max(0, *rec.Score))
	}
	return rec.OverallScore(s)
}
