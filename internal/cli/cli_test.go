package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/inspectreport/pkg/config"
	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/pipeline"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

type testCLI struct {
	*CLI
	out  *bytes.Buffer
	home string
}

// newTestCLI isolates config, cache and data directories under a temp dir.
func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv(config.EnvVar, "")

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.SetOutput(&out)
	return &testCLI{CLI: c, out: &out, home: home}
}

func (tc *testCLI) run(args ...string) error {
	tc.out.Reset()
	root := tc.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func (tc *testCLI) initRecord(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(tc.home, name)
	err := tc.run("init", path, "--make", "Ford", "--model", "Focus", "--year", "2018", "--date", "2026-02-01", "--vin", "WF0AXXGCDA1234567")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	return path
}

func glob(t *testing.T, pattern string) []string {
	t.Helper()
	matches, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

var reportName = regexp.MustCompile(`^AIS_Ford_Focus_2018_AIS-\d{6}-\d{4}\.pdf$`)

func TestInitAndGenerate(t *testing.T) {
	tc := newTestCLI(t)
	rec := tc.initRecord(t, "focus.json")
	outDir := filepath.Join(tc.home, "out")

	if err := tc.run("generate", rec, "-f", "pdf,json", "-o", outDir); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := glob(t, filepath.Join(outDir, "*.pdf")); len(got) != 1 {
		t.Errorf("pdf files = %v", got)
	} else if name := filepath.Base(got[0]); !reportName.MatchString(name) {
		t.Errorf("pdf name %q does not follow PREFIX_Make_Model_Year_ID", name)
	}
	if got := glob(t, filepath.Join(outDir, "*.json")); len(got) != 1 {
		t.Errorf("json files = %v", got)
	}
	if !strings.Contains(tc.out.String(), iconFresh) {
		t.Errorf("first run should render fresh:\n%s", tc.out.String())
	}

	if err := tc.run("generate", rec, "-f", "pdf,json", "-o", outDir); err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if !strings.Contains(tc.out.String(), iconCached) {
		t.Errorf("second run should be served from cache:\n%s", tc.out.String())
	}
}

func TestGenerateSingleOutputFile(t *testing.T) {
	tc := newTestCLI(t)
	rec := tc.initRecord(t, "focus.json")
	out := filepath.Join(tc.home, "report.pdf")

	if err := tc.run("generate", rec, "-o", out, "--no-cache"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestGenerateBatchPartialFailure(t *testing.T) {
	tc := newTestCLI(t)
	good := tc.initRecord(t, "good.json")
	missing := filepath.Join(tc.home, "missing.json")
	outDir := filepath.Join(tc.home, "out")

	err := tc.run("generate", good, missing, "-f", "json", "-o", outDir)
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
	if got := glob(t, filepath.Join(outDir, "*.json")); len(got) != 1 {
		t.Errorf("the valid record should still be written, got %v", got)
	}
}

func TestGenerateBadFormat(t *testing.T) {
	tc := newTestCLI(t)
	rec := tc.initRecord(t, "focus.json")
	if err := tc.run("generate", rec, "-f", "docx"); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	tc := newTestCLI(t)
	rec := tc.initRecord(t, "focus.json")
	if err := tc.run("init", rec); !errs.Is(err, errs.ErrCodeInvalidPath) {
		t.Errorf("err = %v, want INVALID_PATH", err)
	}
	if err := tc.run("init", rec, "--force"); err != nil {
		t.Errorf("--force: %v", err)
	}
}

func TestInitConfig(t *testing.T) {
	tc := newTestCLI(t)
	if err := tc.run("init", "--config"); err != nil {
		t.Fatalf("init --config: %v", err)
	}
	path := filepath.Join(tc.home, "config", config.AppName, "config.toml")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Theme() != config.Default().Theme() {
		t.Error("written config should hold the defaults")
	}
}

func TestValidateCommand(t *testing.T) {
	tc := newTestCLI(t)
	rec := tc.initRecord(t, "focus.json")
	if err := tc.run("validate", rec); err != nil {
		t.Errorf("template record should validate: %v", err)
	}

	r, _, err := inspection.ReadFile(rec)
	if err != nil {
		t.Fatal(err)
	}
	r.Sections[1].ID = r.Sections[0].ID
	bad := filepath.Join(tc.home, "bad.json")
	if err := inspection.WriteFile(bad, r); err != nil {
		t.Fatal(err)
	}
	if err := tc.run("validate", bad); !errs.Is(err, errs.ErrCodeInvalidRecord) {
		t.Errorf("err = %v, want INVALID_RECORD", err)
	}
	if !strings.Contains(tc.out.String(), "duplicate id") {
		t.Errorf("output should list the problem:\n%s", tc.out.String())
	}
}

func TestScoreCommand(t *testing.T) {
	tc := newTestCLI(t)
	rec := tc.initRecord(t, "focus.json")

	if err := tc.run("score", rec, "--json"); err != nil {
		t.Fatalf("score: %v", err)
	}
	var sum pipeline.Summary
	if err := json.Unmarshal(tc.out.Bytes(), &sum); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, tc.out.String())
	}
	if len(sum.Categories) != len(inspection.DefaultChecklist()) {
		t.Errorf("categories = %d", len(sum.Categories))
	}

	if err := tc.run("score", rec); err != nil {
		t.Fatalf("score table: %v", err)
	}
	for _, want := range []string{"Ford", "Overall", "Checklist", "Category"} {
		if !strings.Contains(tc.out.String(), want) {
			t.Errorf("table output missing %q", want)
		}
	}
}

func TestPreviewDump(t *testing.T) {
	tc := newTestCLI(t)
	rec := tc.initRecord(t, "focus.json")
	if err := tc.run("preview", rec, "--dump"); err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(tc.out.String(), "Page 1/") {
		t.Errorf("dump should print pages:\n%s", tc.out.String())
	}
}

func TestCacheCommands(t *testing.T) {
	tc := newTestCLI(t)
	rec := tc.initRecord(t, "focus.json")
	if err := tc.run("generate", rec, "-f", "json", "-o", filepath.Join(tc.home, "out")); err != nil {
		t.Fatal(err)
	}

	if err := tc.run("cache", "path"); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(tc.home, "cache", config.AppName)
	if got := strings.TrimSpace(tc.out.String()); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}

	if err := tc.run("cache", "info"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.out.String(), "Entries") {
		t.Errorf("info output:\n%s", tc.out.String())
	}

	if err := tc.run("cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.out.String(), "Cleared") {
		t.Errorf("clear output:\n%s", tc.out.String())
	}
	if err := tc.run("cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.out.String(), "empty") {
		t.Errorf("second clear output:\n%s", tc.out.String())
	}
}

func TestArchiveCommands(t *testing.T) {
	tc := newTestCLI(t)
	rec := tc.initRecord(t, "focus.json")

	if err := tc.run("archive", "list"); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("without backend err = %v, want INVALID_CONFIG", err)
	}

	cfgPath := filepath.Join(tc.home, "archive.toml")
	archiveDir := filepath.Join(tc.home, "archive")
	cfg := "[archive]\nbackend = \"file\"\ndir = " + strconv.Quote(archiveDir) + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := tc.run("--config", cfgPath, "generate", rec, "-f", "json", "-o", filepath.Join(tc.home, "out"), "--archive"); err != nil {
		t.Fatalf("generate --archive: %v", err)
	}
	if err := tc.run("--config", cfgPath, "archive", "list"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.out.String(), "Ford") {
		t.Errorf("list output:\n%s", tc.out.String())
	}
	if got := glob(t, filepath.Join(archiveDir, "*.bin")); len(got) != 1 {
		t.Errorf("archived artifacts = %v", got)
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	tc := newTestCLI(t)
	err := tc.run("--config", filepath.Join(tc.home, "nope.toml"), "cache", "path")
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestOutputNames(t *testing.T) {
	dir := t.TempDir()

	single := newOutputNames(filepath.Join(dir, "x.pdf"), true)
	if got, _ := single.path("in/rec.json", "Report.pdf"); got != filepath.Join(dir, "x.pdf") {
		t.Errorf("single output = %q", got)
	}

	batch := newOutputNames(dir, false)
	first, _ := batch.path("a/one.json", "Report.pdf")
	second, _ := batch.path("b/two.json", "Report.pdf")
	if first != filepath.Join(dir, "Report.pdf") {
		t.Errorf("first = %q", first)
	}
	if second != filepath.Join(dir, "two.pdf") {
		t.Errorf("colliding name should fall back to the record name, got %q", second)
	}

	beside := newOutputNames("", false)
	if got, _ := beside.path(filepath.Join(dir, "rec.json"), "Report.json"); got != filepath.Join(dir, "Report.json") {
		t.Errorf("default output = %q", got)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"pdf", []string{"pdf"}},
		{"pdf, png,,svg ", []string{"pdf", "png", "svg"}},
	}
	for _, tt := range tests {
		got := splitList(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
