package grid

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/report/flow"
	"github.com/matzehuels/inspectreport/pkg/report/page"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 90, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	var bad inspection.Photo
	if err := json.Unmarshal([]byte(`"data:image/png;base64,!!!"`), &bad); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		photo  inspection.Photo
		ok     bool
		w, h   int
		reason string
	}{
		{"landscape", inspection.NewPhoto(pngBytes(t, 200, 100)), true, 132, 99, ""},
		{"portrait", inspection.NewPhoto(pngBytes(t, 90, 160)), true, 88, 66, ""},
		{"bounded", inspection.NewPhoto(pngBytes(t, 1600, 1200)), true, 1200, 900, ""},
		{"empty", inspection.NewPhoto(nil), false, 0, 0, "empty"},
		{"corrupt", inspection.NewPhoto([]byte("not an image")), false, 0, 0, "undecodable"},
		{"bad data url", bad, false, 0, 0, ""},
		{"tiny", inspection.NewPhoto(pngBytes(t, 2, 2)), false, 0, 0, "too small"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Decode(tt.photo, MaxPixelWidth)
			if r.OK() != tt.ok {
				t.Fatalf("OK() = %v, want %v (reason %q)", r.OK(), tt.ok, r.Reason)
			}
			if !tt.ok {
				if r.Reason == "" || !strings.Contains(r.Reason, tt.reason) {
					t.Errorf("reason = %q, want it to mention %q", r.Reason, tt.reason)
				}
				return
			}
			b := r.Image.Img.Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
			if b.Dx()*AspectH != b.Dy()*AspectW {
				t.Errorf("%dx%d is not 4:3", b.Dx(), b.Dy())
			}
			if r.Image.Key == 0 {
				t.Error("missing payload key")
			}
		})
	}
}

func TestDecodeKeyIsStable(t *testing.T) {
	data := pngBytes(t, 40, 30)
	a := Decode(inspection.NewPhoto(data), MaxPixelWidth)
	b := Decode(inspection.NewPhoto(append([]byte(nil), data...)), MaxPixelWidth)
	if a.Image.Key != b.Image.Key {
		t.Error("identical payloads produced different keys")
	}
}

func TestGeometry(t *testing.T) {
	th := style.DefaultTheme()
	s := GeometryFor(th, "")
	if got, want := s.CellWidth(), (th.ContentWidth()-th.Layout.GridGap)/2; got != want {
		t.Errorf("CellWidth = %v, want %v", got, want)
	}
	if got, want := s.PhotoHeight(), s.CellWidth()*0.75; got != want {
		t.Errorf("PhotoHeight = %v, want %v", got, want)
	}
	for n, want := range map[int]int{0: 0, 1: 1, 2: 1, 3: 2, 8: 4} {
		if got := s.Rows(n); got != want {
			t.Errorf("Rows(%d) = %d, want %d", n, got, want)
		}
	}

	s.Columns = 7
	if s.columns() != 3 {
		t.Errorf("columns clamp to %d, want 3", s.columns())
	}
}

func TestThemeRowHeightMatchesGeometry(t *testing.T) {
	for _, cols := range []int{1, 2, 3} {
		th := style.DefaultTheme()
		th.Layout.GridColumns = cols
		if got, want := th.GridRowHeight(), GeometryFor(th, "").RowHeight(); math.Abs(got-want) > 1e-9 {
			t.Errorf("columns %d: theme row height %v, grid row height %v", cols, got, want)
		}
	}
}

func TestDrawDegradedCellDoesNotStopGrid(t *testing.T) {
	th := style.DefaultTheme()
	c := flow.New(th.Layout.ContentTop, th.Bottom(), nil)
	c.NewPage("")

	good := Decode(inspection.NewPhoto(pngBytes(t, 80, 60)), MaxPixelWidth)
	cells := []Cell{
		{Result: good, Caption: "Photo 1 · Front"},
		{Result: Degraded("undecodable image"), Caption: "Photo 2 · Front"},
		{Result: good, Caption: "Photo 3 · Front"},
	}
	Draw(c, GeometryFor(th, "Front"), cells, th.Palette)

	p := c.Page()
	if n := len(p.Images()); n != 2 {
		t.Errorf("images = %d, want 2", n)
	}
	var placeholders, captions int
	for _, s := range p.Texts() {
		switch {
		case s == Placeholder:
			placeholders++
		case strings.HasPrefix(s, "Photo "):
			captions++
		}
	}
	if placeholders != 1 || captions != 3 {
		t.Errorf("placeholders = %d captions = %d, want 1 and 3", placeholders, captions)
	}
}

func TestDrawRowsNeverSplit(t *testing.T) {
	th := style.DefaultTheme()
	var headers []bool
	c := flow.New(th.Layout.ContentTop, th.Bottom(), func(_ *page.Page, _ string, continued bool) {
		headers = append(headers, continued)
	})
	c.NewPage("Interior")

	s := GeometryFor(th, "Interior")
	cells := make([]Cell, 10)
	for i := range cells {
		cells[i] = Cell{Result: Degraded("missing"), Caption: "Photo"}
	}
	Draw(c, s, cells, th.Palette)

	pages := c.Pages()
	if len(pages) < 2 {
		t.Fatalf("pages = %d, want a continuation", len(pages))
	}
	for _, p := range pages {
		for _, im := range p.Ops {
			if r, ok := im.(page.Rect); ok && r.Y+r.H > th.Bottom()+1e-9 {
				t.Errorf("page %d: rect reaches %v, below %v", p.Index, r.Y+r.H, th.Bottom())
			}
		}
		// whole rows only: every page holds an even number of placeholders
		n := 0
		for _, txt := range p.Texts() {
			if txt == Placeholder {
				n++
			}
		}
		if p.Index < len(pages)-1 && n%2 != 0 {
			t.Errorf("page %d holds a split row (%d cells)", p.Index, n)
		}
	}
	if len(headers) != len(pages) || headers[0] || !headers[1] {
		t.Errorf("headers = %v", headers)
	}
	if c.Err() != nil {
		t.Errorf("unexpected error %v", c.Err())
	}
}
