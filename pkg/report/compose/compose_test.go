package compose

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/report/flow"
	"github.com/matzehuels/inspectreport/pkg/report/grid"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

func photo(t *testing.T) inspection.Photo {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 64, 48))); err != nil {
		t.Fatal(err)
	}
	return inspection.NewPhoto(buf.Bytes())
}

func cursor(th style.Theme) *flow.Cursor {
	return flow.New(th.Layout.ContentTop, th.Bottom(), RunningHeader(th))
}

func texts(pages []*page.Page) []string {
	var out []string
	for _, p := range pages {
		out = append(out, p.Texts()...)
	}
	return out
}

func contains(pages []*page.Page, s string) bool {
	return slices.Contains(texts(pages), s)
}

func record() *inspection.Record {
	rec := inspection.NewRecord(inspection.Vehicle{
		Make: "Toyota", Model: "Corolla", Year: "2019",
		VIN: "JTDBR32E720123456", Mileage: 84250, Inspector: "S. Arya", Date: "2026-03-14",
	})
	for i := range rec.Sections {
		rec.Sections[i].Condition = inspection.Good
	}
	return rec
}

func TestCover(t *testing.T) {
	th := style.DefaultTheme()
	c := cursor(th)
	rec := record()
	Cover(c, th, rec, Meta{ReportID: "AIS-202603-4821", Date: "March 14, 2026", Score: 91})

	pages := c.Pages()
	if len(pages) != 1 {
		t.Fatalf("cover pages = %d, want 1", len(pages))
	}
	for _, want := range []string{
		"AIS", "AIS-202603-4821", "March 14, 2026", th.Brand.Title,
		"2019 Toyota Corolla", "84,250 km", "91", "EXCELLENT CONDITION",
		"INSPECTION SUMMARY", "Front Exterior", "CHECKLIST SCORES", "Body Damage",
	} {
		if !contains(pages, want) {
			t.Errorf("cover is missing %q", want)
		}
	}
	// The cover has its own hero instead of the running header.
	if contains(pages, th.Brand.Name+"  ·  "+th.Brand.Tagline) {
		t.Error("cover carries a running header")
	}
	if c.Err() != nil {
		t.Fatal(c.Err())
	}
}

func TestSummaryTableKeepsEmptySections(t *testing.T) {
	th := style.DefaultTheme()
	rec := record()
	rec.Sections[0].Photos = []inspection.Photo{photo(t)}

	tbl := SummaryTable(th, rec)
	if len(tbl.Rows) != len(rec.Sections) {
		t.Fatalf("rows = %d, want %d", len(tbl.Rows), len(rec.Sections))
	}
	if got := tbl.Rows[0][2].Text; got != "1" {
		t.Errorf("photo count = %q, want 1", got)
	}
	if got := tbl.Rows[1][2].Text; got != "0" {
		t.Errorf("photo count = %q, want 0", got)
	}
}

func TestCategoryTableClassifiesScores(t *testing.T) {
	th := style.DefaultTheme()
	cats := inspection.DefaultChecklist()
	items := cats[0].Subsections[0].Items
	items[0].Value = items[0].WarnOptions[0]

	tbl := CategoryTable(th, cats)
	row := tbl.Rows[0]
	if row[3].Text != "50" || row[4].Text != "FAIL" {
		t.Errorf("row = %q %q, want 50 FAIL", row[3].Text, row[4].Text)
	}
	if *row[4].Color != th.Palette.Bad {
		t.Errorf("result color = %v, want %v", *row[4].Color, th.Palette.Bad)
	}
	if tbl.Rows[1][4].Text != "PASS" {
		t.Errorf("untouched category result = %q, want PASS", tbl.Rows[1][4].Text)
	}
}

func TestPhotoSectionsSkipEmpty(t *testing.T) {
	th := style.DefaultTheme()
	rec := record()
	for _, i := range []int{1, 5, 7} {
		rec.Sections[i].Photos = []inspection.Photo{photo(t), photo(t)}
	}

	c := cursor(th)
	degraded := PhotoSections(c, th, rec.Sections, grid.MaxPixelWidth)
	if len(degraded) != 0 {
		t.Errorf("degraded = %v", degraded)
	}
	if got := len(c.Pages()); got != 3 {
		t.Errorf("pages = %d, want 3", got)
	}
	for i, want := range []string{"REAR EXTERIOR", "ENGINE BAY", "SIDE MIRRORS"} {
		if !slices.Contains(c.Pages()[i].Texts(), want) {
			t.Errorf("page %d is missing %q", i, want)
		}
	}
}

func TestSectionDegradedPhoto(t *testing.T) {
	th := style.DefaultTheme()
	s := inspection.PhotoSection{
		ID: "engine_bay", Name: "Engine Bay", Condition: inspection.Fair,
		Photos: []inspection.Photo{photo(t), inspection.NewPhoto([]byte{0xff, 0xd8, 0x00}), photo(t)},
	}

	c := cursor(th)
	degraded := Section(c, th, s, grid.MaxPixelWidth)
	if len(degraded) != 1 || degraded[0].Photo != 2 || degraded[0].Section != "engine_bay" {
		t.Fatalf("degraded = %v, want photo 2 of engine_bay", degraded)
	}

	var images, placeholders, captions int
	for _, p := range c.Pages() {
		images += len(p.Images())
		for _, s := range p.Texts() {
			switch {
			case s == grid.Placeholder:
				placeholders++
			case strings.HasPrefix(s, "Photo ") && strings.HasSuffix(s, "Engine Bay"):
				captions++
			}
		}
	}
	if images != 2 || placeholders != 1 || captions != 3 {
		t.Errorf("images=%d placeholders=%d captions=%d, want 2 1 3", images, placeholders, captions)
	}
	if !contains(c.Pages(), NoNotes) {
		t.Errorf("callout without notes should say %q", NoNotes)
	}
}

func TestCalloutWrapsNotes(t *testing.T) {
	th := style.DefaultTheme()
	s := inspection.PhotoSection{
		ID: "front", Name: "Front", Condition: inspection.Poor,
		Notes:  strings.Repeat("Deep scratch along the bumper with paint loss. ", 12),
		Photos: []inspection.Photo{photo(t)},
	}
	c := cursor(th)
	Section(c, th, s, grid.MaxPixelWidth)

	var notes int
	for _, txt := range texts(c.Pages()) {
		if strings.Contains(txt, "bumper") {
			notes++
		}
	}
	if notes != noteLines {
		t.Errorf("note lines = %d, want %d", notes, noteLines)
	}
}

func TestChecklistFlows(t *testing.T) {
	th := style.DefaultTheme()
	cats := inspection.DefaultChecklist()
	it := &cats[0].Subsections[0].Items[0]
	it.Value = it.WarnOptions[0]

	c := cursor(th)
	Checklist(c, th, cats)
	if c.Err() != nil {
		t.Fatal(c.Err())
	}
	pages := c.Pages()
	if len(pages) < 2 {
		t.Fatalf("checklist pages = %d, want a continuation", len(pages))
	}

	var warnColored bool
	for _, p := range pages {
		if _, bottom := p.Bounds(); bottom > th.Bottom()+1e-9 {
			t.Errorf("page %d reaches %v, below %v", p.Index, bottom, th.Bottom())
		}
		for _, op := range p.Ops {
			if txt, ok := op.(page.Text); ok && txt.Value == it.WarnOptions[0] && txt.Color == th.Palette.Bad {
				warnColored = true
			}
		}
	}
	if !warnColored {
		t.Error("warn value not drawn in the warn color")
	}
	if !contains(pages, "FAIL  50%") {
		t.Error("category badge missing")
	}
}

func TestLongCategoryContinues(t *testing.T) {
	th := style.DefaultTheme()
	items := make([]inspection.ChecklistItem, 200)
	for i := range items {
		items[i] = inspection.ChecklistItem{ID: fmt.Sprint(i), Label: "Pad wear", Options: []string{"OK", "Worn"}}
	}
	cat := inspection.ChecklistCategory{ID: "brakes", Name: "Brakes", Subsections: []inspection.Subsection{{Name: "Pads", Items: items}}}

	c := cursor(th)
	Checklist(c, th, []inspection.ChecklistCategory{cat})
	pages := c.Pages()
	if len(pages) < 3 {
		t.Fatalf("pages = %d, want the category to span pages", len(pages))
	}
	if contains(pages[:1], "Brakes (continued)") {
		t.Error("first page labelled as a continuation")
	}
	for _, p := range pages[1:] {
		if !slices.Contains(p.Texts(), "Brakes (continued)") {
			t.Errorf("page %d lacks the continued label: %v", p.Index, p.Texts())
		}
	}
}

func TestCategoryOpeningPageIsNotContinued(t *testing.T) {
	th := style.DefaultTheme()
	cat := inspection.DefaultChecklist()[1]

	c := cursor(th)
	c.NewPage(ChecklistLabel)
	c.SetY(th.Bottom() - 5)
	category(c, th, cat)

	pages := c.Pages()
	if len(pages) < 2 {
		t.Fatalf("pages = %d, want the heading moved to a new page", len(pages))
	}
	opening := texts(pages[1:2])
	if slices.Contains(opening, cat.Name+" (continued)") {
		t.Errorf("page opening %s is labelled as a continuation", cat.Name)
	}
	if !slices.Contains(opening, cat.Name) {
		t.Errorf("page opening %s lacks its running header: %v", cat.Name, opening)
	}
}

func TestCoverHeadingOnNewPageIsNotContinued(t *testing.T) {
	th := style.DefaultTheme()
	c := cursor(th)
	c.NewPage(SummaryLabel)
	c.SetY(th.Bottom() - 5)
	heading(c, th, "CHECKLIST SCORES", "", 20, CategoriesLabel)

	opening := texts(c.Pages()[1:])
	if slices.Contains(opening, CategoriesLabel+" (continued)") || !slices.Contains(opening, CategoriesLabel) {
		t.Errorf("running header on the opening page = %v", opening)
	}
}

func TestChecklistEmpty(t *testing.T) {
	th := style.DefaultTheme()
	c := cursor(th)
	Checklist(c, th, nil)
	if len(c.Pages()) != 0 {
		t.Errorf("pages = %d, want 0", len(c.Pages()))
	}
}

func TestMark(t *testing.T) {
	p := page.New(0)
	if adv := mark(p, 0, 0, 10, "🚗", 9, style.RGB(1, 2, 3)); adv <= 0 {
		t.Errorf("advance = %v", adv)
	}
	if len(p.Texts()) != 0 {
		t.Error("emoji icon should be drawn as a chip")
	}
	mark(p, 0, 0, 10, "A", 9, style.RGB(1, 2, 3))
	if !slices.Equal(p.Texts(), []string{"A"}) {
		t.Errorf("texts = %q", p.Texts())
	}
}
