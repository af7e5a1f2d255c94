package fonts

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// PointMM is the length of one typographic point in millimetres.
const PointMM = 25.4 / 72

// Advance widths in 1/1000 em for ASCII 32..126, from the Adobe core font
// metrics.
var helvetica = [95]uint16{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556,
	278, 278, 584, 584, 584, 556, 1015,
	667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833,
	722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611,
	278, 278, 278, 469, 556, 333,
	556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833,
	556, 556, 556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500,
	334, 260, 334, 584,
}

var helveticaBold = [95]uint16{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556,
	333, 333, 584, 584, 584, 611, 975,
	722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833,
	722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611,
	333, 278, 333, 584, 556, 333,
	556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889,
	611, 611, 611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500,
	389, 280, 389, 584,
}

var punctuation = map[rune][2]uint16{
	'…': {1000, 1000},
	'·': {278, 278},
	'•': {350, 350},
	'–': {556, 556},
	'—': {1000, 1000},
	'©': {737, 737},
	'°': {400, 400},
	'‘': {222, 278},
	'’': {222, 278},
	'“': {333, 500},
	'”': {333, 500},
}

const defaultAdvance = 556

// advance returns the width of r in 1/1000 em.
func advance(r rune, bold bool) uint16 {
	if r >= 32 && r <= 126 {
		if bold {
			return helveticaBold[r-32]
		}
		return helvetica[r-32]
	}
	if w, ok := punctuation[r]; ok {
		if bold {
			return w[1]
		}
		return w[0]
	}
	// Accented letters share the advance of their base letter.
	if d := norm.NFD.String(string(r)); d != "" {
		if base, _ := utf8.DecodeRuneInString(d); base != r && base >= 32 && base <= 126 {
			return advance(base, bold)
		}
	}
	return defaultAdvance
}

// Width returns the width of s in millimetres at size points.
func Width(s string, size float64, bold bool) float64 {
	var units int
	for _, r := range s {
		units += int(advance(r, bold))
	}
	return float64(units) / 1000 * size * PointMM
}

// Ascent returns the cap height of a size-point font in millimetres.
func Ascent(size float64) float64 {
	return 0.718 * size * PointMM
}
