// Package pipeline runs the load → generate → render pipeline for inspection
// reports.
//
// This package is shared by the CLI and the HTTP server so both entry points
// load records, apply the theme, cache artifacts and name files the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: read a record (JSON file or request body) and resolve photo paths
//  2. Layout: paginate the record into a [report.Document]
//  3. Render: serialize the document in the requested formats (PDF, PNG, SVG, JSON)
//
// Artifacts are cached by record content and theme. A cache hit skips both
// layout and render.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.ExecuteFile(ctx, "inspection.json", pipeline.Options{
//	    Formats: []sink.Format{sink.PDF},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifacts[sink.PDF]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/inspectreport/pkg/cache"
	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/report"
	"github.com/matzehuels/inspectreport/pkg/report/sink"
	"github.com/matzehuels/inspectreport/pkg/report/style"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

const (
	// DefaultScale is the PNG resolution in pixels per millimetre.
	DefaultScale = 3.0

	// DefaultConcurrency bounds parallel generations in a batch.
	DefaultConcurrency = 4
)

// DefaultFormat is the format produced when none is requested.
const DefaultFormat = sink.PDF

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Formats []sink.Format `json:"formats,omitempty"`
	Scale   float64       `json:"scale,omitempty"`   // PNG only
	Refresh bool          `json:"refresh,omitempty"` // bypass cached artifacts

	// Runtime options (not serialized)
	Theme         style.Theme     `json:"-"`
	Logger        *log.Logger     `json:"-"`
	ReportOptions []report.Option `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the laid-out report. It is nil when every artifact came
	// from the cache.
	Document *report.Document

	// Record is the input record.
	Record *inspection.Record

	// RecordHash is the content hash of the input record.
	RecordHash string

	// Meta describes the report the artifacts belong to.
	Meta Meta

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[sink.Format][]byte

	// Warnings lists photos that could not be loaded from disk.
	Warnings []error

	Stats     Stats
	CacheInfo CacheInfo
}

// Meta identifies the report behind a set of artifacts and survives caching.
type Meta struct {
	ReportID    string               `json:"report_id"`
	FileName    string               `json:"file_name"`
	GeneratedAt time.Time            `json:"generated_at"`
	Date        string               `json:"date"`
	Score       int                  `json:"score"`
	Pages       int                  `json:"pages"`
	Degraded    []report.Degradation `json:"degraded,omitempty"`
}

// ArtifactName returns the file name of the artifact in format f.
func (m Meta) ArtifactName(f sink.Format) string {
	return sink.FileName(&report.Document{FileName: m.FileName}, f)
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Photos     int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []sink.Format) error {
	for _, f := range formats {
		if _, err := sink.ParseFormat(string(f)); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats parses a list of format names, dropping duplicates.
func ParseFormats(names []string) ([]sink.Format, error) {
	seen := make(map[sink.Format]bool)
	var out []sink.Format
	for _, n := range names {
		f, err := sink.ParseFormat(n)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []sink.Format{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0.5 || o.Scale > 20 {
		return errs.New(errs.ErrCodeInvalidInput, "scale %g out of range [0.5,20]", o.Scale)
	}
	if o.Theme == (style.Theme{}) {
		o.Theme = style.DefaultTheme()
	}
	if err := o.Theme.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format sink.Format) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: string(format), Theme: o.Theme}
	if format == sink.PNG {
		opts.Scale = o.Scale
	}
	return opts
}
