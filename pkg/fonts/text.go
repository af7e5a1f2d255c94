package fonts

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Truncate shortens s so that it fits maxWidth millimetres, appending an
// ellipsis when anything was cut.
func Truncate(s string, maxWidth, size float64, bold bool) string {
	if Width(s, size, bold) <= maxWidth {
		return s
	}
	budget := maxWidth - Width(Ellipsis, size, bold)
	if budget <= 0 {
		return ""
	}
	runes := []rune(s)
	var units int
	limit := int(budget / (size * PointMM) * 1000)
	for i, r := range runes {
		units += int(advance(r, bold))
		if units > limit {
			return strings.TrimRight(string(runes[:i]), " ") + Ellipsis
		}
	}
	return s
}

// Wrap breaks s into lines no wider than maxWidth millimetres. At most
// maxLines lines are returned (0 means unlimited); the last one is truncated
// with an ellipsis when text remains. Words longer than a line are truncated.
func Wrap(s string, maxWidth, size float64, bold bool, maxLines int) []string {
	var lines []string
	var cur string
	for _, w := range strings.Fields(s) {
		next := w
		if cur != "" {
			next = cur + " " + w
		}
		if Width(next, size, bold) <= maxWidth {
			cur = next
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
		}
		cur = Truncate(w, maxWidth, size, bold)
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if maxLines > 0 && len(lines) > maxLines {
		rest := strings.Join(lines[maxLines-1:], " ")
		lines = append(lines[:maxLines-1], Truncate(rest, maxWidth, size, bold))
	}
	return lines
}

// Printable drops runes that the standard PDF fonts cannot show
// (anything outside Windows-1252), then trims surrounding space.
func Printable(s string) string {
	var b strings.Builder
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
