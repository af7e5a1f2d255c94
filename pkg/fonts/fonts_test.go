package fonts

import (
	"math"
	"strings"
	"testing"
)

func TestWidth(t *testing.T) {
	// "Hello" in Helvetica: 722+556+222+222+556 = 2278 units.
	want := 2.278 * 10 * PointMM
	if got := Width("Hello", 10, false); math.Abs(got-want) > 1e-9 {
		t.Errorf("Width() = %v, want %v", got, want)
	}
	if Width("Hello", 10, true) <= Width("Hello", 10, false) {
		t.Error("bold should be wider")
	}
	if Width("é", 10, false) != Width("e", 10, false) {
		t.Error("accented letter should share its base advance")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     string
	}{
		{"fits", "Brakes", 50, "Brakes"},
		{"cut", "Front Right Brake Pad Condition", 20, ""},
		{"nothing fits", "Brakes", 0.5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth, 8, false)
			if tt.want != "" && got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
			if Width(got, 8, false) > tt.maxWidth {
				t.Errorf("Truncate() = %q is wider than %v", got, tt.maxWidth)
			}
			if got != tt.input && got != "" && !strings.HasSuffix(got, Ellipsis) {
				t.Errorf("Truncate() = %q lacks ellipsis", got)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	text := "Minor paint swirl on the bonnet, small chip on the lower bumper and a faded badge on the grille"

	lines := Wrap(text, 60, 8, false, 0)
	if len(lines) < 2 {
		t.Fatalf("expected several lines, got %v", lines)
	}
	for _, l := range lines {
		if Width(l, 8, false) > 60 {
			t.Errorf("line %q overflows", l)
		}
	}

	two := Wrap(text, 60, 8, false, 2)
	if len(two) != 2 {
		t.Fatalf("maxLines=2 gave %d lines", len(two))
	}
	if !strings.HasSuffix(two[1], Ellipsis) {
		t.Errorf("last line %q should end with an ellipsis", two[1])
	}

	if got := Wrap("   ", 60, 8, false, 2); len(got) != 0 {
		t.Errorf("blank text gave %v", got)
	}
}

func TestPrintable(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Brakes", "Brakes"},
		{"🛑 Brakes", "Brakes"},
		{"Café · © 2026", "Café · © 2026"},
		{"⚙", ""},
	}
	for _, tt := range tests {
		if got := Printable(tt.in); got != tt.want {
			t.Errorf("Printable(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFace(t *testing.T) {
	face, err := Face(true, 12)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	defer face.Close()
	if face.Metrics().Height <= 0 {
		t.Error("face has no height")
	}
}
