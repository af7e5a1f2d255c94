package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/inspectreport/pkg/cache"
	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/observability"
	"github.com/matzehuels/inspectreport/pkg/report/sink"
)

// metaFormat is the pseudo-format under which report metadata is cached next
// to the artifacts.
const metaFormat = sink.Format("meta")

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the artifact lifetime; zero means cache.ArtifactTTL.
	TTL time.Duration

	// Progress, if set, is called by ExecuteBatch after each record
	// finishes. Calls may come from several goroutines.
	Progress func(done, total int)
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ExecuteFile parses the record at path and runs the pipeline on it.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, path)
	rec, warnings, err := Parse(ctx, path)
	photos := 0
	if rec != nil {
		photos = countPhotos(rec)
	}
	parseTime := time.Since(start)
	observability.Pipeline().OnLoadComplete(ctx, path, photos, parseTime, err)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	for _, w := range warnings {
		opts.Logger.Warn("photo not loaded", "file", path, "err", w)
	}

	result, err := r.Execute(ctx, rec, opts)
	if err != nil {
		return nil, err
	}
	result.Warnings = warnings
	result.Stats.ParseTime = parseTime
	return result, nil
}

// Execute runs layout and render for rec, serving artifacts from the cache
// when every requested format and the metadata are present.
func (r *Runner) Execute(ctx context.Context, rec *inspection.Record, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Record:    rec,
		Artifacts: make(map[sink.Format][]byte),
	}
	if rec != nil {
		result.Stats.Photos = countPhotos(rec)
		if h, err := cache.RecordHash(rec); err == nil {
			result.RecordHash = h
		}
	}

	layoutOpts := opts
	if !opts.Refresh && result.RecordHash != "" {
		if meta, ok := r.cachedMeta(ctx, result.RecordHash, opts); ok {
			if artifacts, ok := r.cachedArtifacts(ctx, result.RecordHash, meta.ReportID, opts); ok {
				result.Meta = meta
				result.Artifacts = artifacts
				result.CacheInfo.RenderHit = true
				opts.Logger.Info("served from cache", "report", meta.ReportID, "formats", opts.Formats)
				return result, nil
			}
			// Render the missing formats for the report already handed out.
			if !meta.GeneratedAt.IsZero() {
				layoutOpts = opts.reuse(meta)
			}
		}
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	doc, err := GenerateLayout(ctx, rec, layoutOpts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Document = doc
	result.Meta = MetaOf(doc)
	result.Stats.LayoutTime = time.Since(layoutStart)

	// Stage 2: Render
	names := formatNames(opts.Formats)
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, names)
	artifacts, err := Render(ctx, doc, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, names, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	opts.Logger.Info("rendered outputs",
		"report", doc.ReportID,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if result.RecordHash != "" {
		r.store(ctx, result.RecordHash, result.Meta, artifacts, opts)
	}
	return result, nil
}

// cachedMeta returns the metadata of the report last rendered for the record.
func (r *Runner) cachedMeta(ctx context.Context, recordHash string, opts Options) (Meta, bool) {
	var meta Meta
	data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(recordHash, opts.ArtifactKeyOpts(metaFormat)))
	if err != nil || !hit || json.Unmarshal(data, &meta) != nil || meta.ReportID == "" {
		return Meta{}, false
	}
	return meta, true
}

// cachedArtifacts returns every requested artifact of report reportID, or
// ok=false if any is missing or was rendered for another report.
func (r *Runner) cachedArtifacts(ctx context.Context, recordHash, reportID string, opts Options) (map[sink.Format][]byte, bool) {
	artifacts := make(map[sink.Format][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(recordHash, opts.ArtifactKeyOpts(format)))
		if err != nil || !hit {
			return nil, false
		}
		body, ok := unframe(reportID, data)
		if !ok {
			return nil, false
		}
		artifacts[format] = body
	}
	return artifacts, true
}

// frame prefixes a cached artifact with the id of the report it belongs to.
func frame(reportID string, data []byte) []byte {
	out := make([]byte, 0, len(reportID)+1+len(data))
	out = append(out, reportID...)
	out = append(out, '\n')
	return append(out, data...)
}

// unframe strips the prefix written by frame if it names reportID.
func unframe(reportID string, b []byte) ([]byte, bool) {
	id, data, ok := bytes.Cut(b, []byte{'\n'})
	if !ok || string(id) != reportID {
		return nil, false
	}
	return data, true
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.ArtifactTTL
}

// store caches every artifact and the metadata. Cache failures are logged,
// never returned.
func (r *Runner) store(ctx context.Context, recordHash string, meta Meta, artifacts map[sink.Format][]byte, opts Options) {
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(recordHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, frame(meta.ReportID, data), r.ttl()); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			return
		}
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return
	}
	key := r.Keyer.ArtifactKey(recordHash, opts.ArtifactKeyOpts(metaFormat))
	if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
		opts.Logger.Warn("cache write failed", "format", metaFormat, "err", err)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func formatNames(formats []sink.Format) []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}
