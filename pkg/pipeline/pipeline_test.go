package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/matzehuels/inspectreport/pkg/cache"
	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/report/sink"
	"github.com/matzehuels/inspectreport/pkg/report/style"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 40, 30))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// writeRecord stores a record referencing photos/front.png next to it.
func writeRecord(t *testing.T, dir string, withPhotoFile bool) string {
	t.Helper()
	rec := inspection.NewRecord(inspection.Vehicle{Make: "Honda", Model: "Civic", Year: "2020", Date: "2026-01-05"})
	rec.Sections[0].Photos = []inspection.Photo{{Source: "photos/front.png"}}
	path := filepath.Join(dir, "record.json")
	if err := inspection.WriteFile(path, rec); err != nil {
		t.Fatal(err)
	}
	if withPhotoFile {
		if err := os.MkdirAll(filepath.Join(dir, "photos"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "photos", "front.png"), pngBytes(t), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]sink.Format{sink.SVG, sink.PNG}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]sink.Format{sink.SVG, "docx"}); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format should fail with INVALID_FORMAT: %v", err)
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{"pdf", "PNG", "pdf"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != sink.PDF || got[1] != sink.PNG {
		t.Errorf("ParseFormats = %v", got)
	}
	if _, err := ParseFormats([]string{"gif"}); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v", opts.Scale)
	}
	if opts.Theme != style.DefaultTheme() {
		t.Error("Theme should default to DefaultTheme")
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	bad := Options{Scale: 100}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("out of range scale should fail")
	}

	th := style.DefaultTheme()
	th.Layout.GridColumns = 9
	if err := (&Options{Theme: th}).ValidateAndSetDefaults(); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("invalid theme err = %v", err)
	}
}

func TestArtifactKeyOptsScaleOnlyForPNG(t *testing.T) {
	opts := Options{Scale: 4}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.ArtifactKeyOpts(sink.PDF).Scale != 0 {
		t.Error("scale should not key PDF artifacts")
	}
	if opts.ArtifactKeyOpts(sink.PNG).Scale != 4 {
		t.Error("scale should key PNG artifacts")
	}
}

func TestParseReader(t *testing.T) {
	rec := inspection.NewRecord(inspection.Vehicle{Make: "Kia"})
	rec.Sections[1].Photos = []inspection.Photo{{Source: "rear.png"}}
	var buf bytes.Buffer
	if err := inspection.Write(&buf, rec); err != nil {
		t.Fatal(err)
	}
	raw := buf.Bytes()

	_, warnings, err := ParseReader(context.Background(), bytes.NewReader(raw), nil)
	if err != nil || len(warnings) != 1 {
		t.Errorf("without fs: warnings=%v err=%v", warnings, err)
	}

	fsys := fstest.MapFS{"rear.png": {Data: pngBytes(t)}}
	got, warnings, err := ParseReader(context.Background(), bytes.NewReader(raw), fsys)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("with fs: warnings=%v err=%v", warnings, err)
	}
	if got.Sections[1].Photos[0].Data == nil {
		t.Error("photo should be resolved from fs")
	}

	if _, _, err := ParseReader(context.Background(), strings.NewReader("{"), nil); !errs.Is(err, errs.ErrCodeInvalidRecord) {
		t.Errorf("malformed record err = %v", err)
	}
}

func TestExecuteFile(t *testing.T) {
	path := writeRecord(t, t.TempDir(), true)
	r := NewRunner(nil, nil, nil)

	res, err := r.ExecuteFile(context.Background(), path, Options{Formats: []sink.Format{sink.PDF, sink.JSON}})
	if err != nil {
		t.Fatalf("ExecuteFile: %v", err)
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(res.Artifacts))
	}
	if !bytes.HasPrefix(res.Artifacts[sink.PDF], []byte("%PDF-")) {
		t.Error("pdf artifact is not a PDF")
	}
	if res.Document == nil || res.Meta.Pages != res.Document.PageCount() {
		t.Errorf("meta = %+v", res.Meta)
	}
	if len(res.Warnings) != 0 || len(res.Meta.Degraded) != 0 {
		t.Errorf("unexpected warnings %v / degraded %v", res.Warnings, res.Meta.Degraded)
	}
	if res.Stats.Photos != 1 {
		t.Errorf("photos = %d", res.Stats.Photos)
	}
	if !strings.HasSuffix(res.Meta.ArtifactName(sink.JSON), ".json") {
		t.Errorf("ArtifactName = %q", res.Meta.ArtifactName(sink.JSON))
	}
}

func TestExecuteFileMissingPhotoDegrades(t *testing.T) {
	path := writeRecord(t, t.TempDir(), false)
	res, err := NewRunner(nil, nil, nil).ExecuteFile(context.Background(), path, Options{Formats: []sink.Format{sink.JSON}})
	if err != nil {
		t.Fatalf("ExecuteFile: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings = %v, want 1", res.Warnings)
	}
	if len(res.Meta.Degraded) != 1 {
		t.Errorf("degraded = %v, want 1", res.Meta.Degraded)
	}
}

func TestExecuteFileNotFound(t *testing.T) {
	_, err := NewRunner(nil, nil, nil).ExecuteFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"), Options{})
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExecuteCaches(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	rec := inspection.NewRecord(inspection.Vehicle{Make: "Mazda", Model: "CX-5"})
	opts := Options{Formats: []sink.Format{sink.SVG}}

	first, err := r.Execute(ctx, rec, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := r.Execute(ctx, rec, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit || second.Document != nil {
		t.Error("second run should be served from cache")
	}
	if second.Meta.ReportID != first.Meta.ReportID {
		t.Errorf("cached report id = %q, want %q", second.Meta.ReportID, first.Meta.ReportID)
	}
	if !bytes.Equal(second.Artifacts[sink.SVG], first.Artifacts[sink.SVG]) {
		t.Error("cached artifact differs")
	}

	// A format not rendered before misses.
	third, err := r.Execute(ctx, rec, Options{Formats: []sink.Format{sink.SVG, sink.JSON}})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("new format should miss")
	}

	refreshed, err := r.Execute(ctx, rec, Options{Formats: []sink.Format{sink.SVG}, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteCachedFormatsShareReportID(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	rec := inspection.NewRecord(inspection.Vehicle{Make: "Volvo", Model: "V60", Year: "2020"})

	run := func(f sink.Format, refresh bool) *Result {
		t.Helper()
		res, err := r.Execute(ctx, rec, Options{Formats: []sink.Format{f}, Refresh: refresh})
		if err != nil {
			t.Fatalf("Execute(%s): %v", f, err)
		}
		if !bytes.Contains(res.Artifacts[f], []byte(res.Meta.ReportID)) {
			t.Errorf("%s artifact does not carry its report id %s", f, res.Meta.ReportID)
		}
		return res
	}

	svg := run(sink.SVG, false)
	js := run(sink.JSON, false)
	if js.CacheInfo.RenderHit {
		t.Error("first JSON render should miss")
	}
	if js.Meta.ReportID != svg.Meta.ReportID || js.Meta.FileName != svg.Meta.FileName {
		t.Errorf("JSON render got report %s, want %s", js.Meta.ReportID, svg.Meta.ReportID)
	}
	again := run(sink.SVG, false)
	if !again.CacheInfo.RenderHit || again.Meta.ReportID != svg.Meta.ReportID {
		t.Errorf("cached SVG: hit=%v report=%s, want hit with %s",
			again.CacheInfo.RenderHit, again.Meta.ReportID, svg.Meta.ReportID)
	}
	if !bytes.Equal(again.Artifacts[sink.SVG], svg.Artifacts[sink.SVG]) {
		t.Error("cached SVG differs from the first render")
	}

	// A refresh issues a new report; artifacts of the old one are not reused.
	fresh := run(sink.SVG, true)
	stale := run(sink.JSON, false)
	if stale.Meta.ReportID != fresh.Meta.ReportID {
		t.Errorf("JSON after refresh got report %s, want %s", stale.Meta.ReportID, fresh.Meta.ReportID)
	}
}

func TestExecuteInvalidRecord(t *testing.T) {
	rec := inspection.NewRecord(inspection.Vehicle{})
	rec.Sections[0].Condition = "Shiny"
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), rec, Options{})
	if !errs.Is(err, errs.ErrCodeReportFailed) || !errs.Is(err, errs.ErrCodeInvalidRecord) {
		t.Errorf("err = %v, want REPORT_GENERATION_FAILED wrapping INVALID_RECORD", err)
	}
}

func TestExecuteBatch(t *testing.T) {
	dir := t.TempDir()
	good := writeRecord(t, dir, true)
	missing := filepath.Join(dir, "missing.json")

	runner := NewRunner(nil, nil, nil)
	var mu sync.Mutex
	var calls []int
	runner.Progress = func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		if total != 3 {
			t.Errorf("progress total = %d, want 3", total)
		}
		calls = append(calls, done)
	}
	items := runner.ExecuteBatch(context.Background(),
		[]string{good, missing, good}, Options{Formats: []sink.Format{sink.JSON}}, 2)
	if len(items) != 3 {
		t.Fatalf("items = %d", len(items))
	}
	slices.Sort(calls)
	if !slices.Equal(calls, []int{1, 2, 3}) {
		t.Errorf("progress calls = %v", calls)
	}
	if items[0].Err != nil || items[2].Err != nil {
		t.Errorf("good records failed: %v / %v", items[0].Err, items[2].Err)
	}
	if items[1].Err == nil || items[1].Path != missing {
		t.Errorf("missing record: %+v", items[1])
	}
	err := BatchErr(items)
	if err == nil || !strings.Contains(err.Error(), "missing.json") {
		t.Errorf("BatchErr = %v", err)
	}
	if BatchErr(items[:1]) != nil {
		t.Error("BatchErr of successes should be nil")
	}
}

func TestSummarize(t *testing.T) {
	rec := inspection.NewRecord(inspection.Vehicle{Make: "Ford", Model: "Ranger", Year: "2018"})
	score := 72
	rec.Score = &score
	rec.Sections[0].Photos = []inspection.Photo{inspection.NewPhoto([]byte{1}), inspection.NewPhoto([]byte{2})}
	rec.Sections[3].Photos = []inspection.Photo{inspection.NewPhoto([]byte{3})}

	sum := Summarize(rec, nil)
	if sum.Photos != 3 {
		t.Errorf("photos = %d, want 3", sum.Photos)
	}
	if sum.Overall != 72 || sum.Verdict != style.ForScore(72).Verdict() {
		t.Errorf("overall = %d %q", sum.Overall, sum.Verdict)
	}
	if sum.Vehicle != "2018 Ford Ranger" {
		t.Errorf("vehicle = %q", sum.Vehicle)
	}
	if len(sum.Categories) != len(rec.Checklist) {
		t.Fatalf("categories = %d, want %d", len(sum.Categories), len(rec.Checklist))
	}
	if sum.Checklist != inspection.ChecklistScore(rec.Checklist) {
		t.Errorf("checklist = %d", sum.Checklist)
	}
}

func TestRunnerScoreCaches(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, cache.NewScopedKeyer(nil, "AIS:"), nil)
	rec := inspection.NewRecord(inspection.Vehicle{Make: "Audi"})

	first, hit, err := r.Score(ctx, rec, nil)
	if err != nil || hit {
		t.Fatalf("first = %v, %v", hit, err)
	}
	second, hit, err := r.Score(ctx, rec, nil)
	if err != nil || !hit {
		t.Fatalf("second = %v, %v", hit, err)
	}
	if second.Overall != first.Overall || len(second.Categories) != len(first.Categories) {
		t.Error("cached summary differs")
	}
}
