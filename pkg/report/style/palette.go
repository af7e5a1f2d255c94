package style

import "github.com/matzehuels/inspectreport/pkg/inspection"

// Status is the three-way classification of a score.
type Status int

const (
	StatusGood Status = iota
	StatusCaution
	StatusBad
)

// Score thresholds of ForScore.
const (
	GoodThreshold    = 85
	CautionThreshold = 70
)

// ForScore classifies a 0-100 score: >= 85 good, 70-84 caution, < 70 bad.
func ForScore(score int) Status {
	switch {
	case score >= GoodThreshold:
		return StatusGood
	case score >= CautionThreshold:
		return StatusCaution
	default:
		return StatusBad
	}
}

// Label returns the badge text of s.
func (s Status) Label() string {
	switch s {
	case StatusGood:
		return "PASS"
	case StatusCaution:
		return "CAUTION"
	default:
		return "FAIL"
	}
}

// Verdict returns the caption shown under an overall score.
func (s Status) Verdict() string {
	switch s {
	case StatusGood:
		return "Excellent Condition"
	case StatusCaution:
		return "Good Condition"
	default:
		return "Needs Attention"
	}
}

// String implements fmt.Stringer.
func (s Status) String() string { return s.Label() }

// Palette maps semantic roles to colors.
type Palette struct {
	Navy      Color `toml:"navy"`      // hero, heading bars, running header and footer bands
	Accent    Color `toml:"accent"`    // title bar, badges, links
	Surface   Color `toml:"surface"`   // card and stripe backgrounds
	Border    Color `toml:"border"`    // frames and rules
	Text      Color `toml:"text"`      // body text
	Muted     Color `toml:"muted"`     // captions and secondary text
	Faint     Color `toml:"faint"`     // text on dark bands
	OnDark    Color `toml:"on_dark"`   // primary text on dark bands
	HeaderInk Color `toml:"header_ink"`
	Empty     Color `toml:"empty"` // photo placeholder fill

	Good    Color `toml:"good"`
	Caution Color `toml:"caution"`
	Bad     Color `toml:"bad"`

	Excellent Color `toml:"excellent"`
	Fine      Color `toml:"fine"` // "Good" condition
	Fair      Color `toml:"fair"`
	Poor      Color `toml:"poor"`
}

// DefaultPalette returns the standard report colors.
func DefaultPalette() Palette {
	return Palette{
		Navy:      RGB(15, 23, 42),
		Accent:    RGB(37, 99, 235),
		Surface:   RGB(248, 250, 252),
		Border:    RGB(226, 232, 240),
		Text:      RGB(30, 41, 59),
		Muted:     RGB(100, 116, 139),
		Faint:     RGB(148, 163, 184),
		OnDark:    RGB(255, 255, 255),
		HeaderInk: RGB(71, 85, 105),
		Empty:     RGB(241, 245, 249),

		Good:    RGB(22, 163, 74),
		Caution: RGB(202, 138, 4),
		Bad:     RGB(220, 38, 38),

		Excellent: RGB(22, 163, 74),
		Fine:      RGB(37, 99, 235),
		Fair:      RGB(202, 138, 4),
		Poor:      RGB(220, 38, 38),
	}
}

// ForStatus returns the color of s.
func (p Palette) ForStatus(s Status) Color {
	switch s {
	case StatusGood:
		return p.Good
	case StatusCaution:
		return p.Caution
	default:
		return p.Bad
	}
}

// ForScore returns the color of a score, see ForScore.
func (p Palette) ForScore(score int) Color {
	return p.ForStatus(ForScore(score))
}

// ForCondition returns the fixed semantic color of a condition. Unrated
// sections use Muted.
func (p Palette) ForCondition(c inspection.Condition) Color {
	switch c {
	case inspection.Excellent:
		return p.Excellent
	case inspection.Good:
		return p.Fine
	case inspection.Fair:
		return p.Fair
	case inspection.Poor:
		return p.Poor
	default:
		return p.Muted
	}
}

// ForItem returns the value color of a checklist item: Bad for warn values,
// Good for scored items, Text otherwise.
func (p Palette) ForItem(s inspection.ItemStatus) Color {
	switch s {
	case inspection.StatusWarn:
		return p.Bad
	case inspection.StatusOK:
		return p.Good
	default:
		return p.Text
	}
}

// Tint mixes c with white; amount 0 returns c, 1 returns white.
func Tint(c Color, amount float64) Color {
	amount = min(1, max(0, amount))
	mix := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*amount + 0.5)
	}
	return Color{mix(c.R), mix(c.G), mix(c.B)}
}
