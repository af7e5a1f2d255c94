package report

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/inspectreport/pkg/inspection"
)

// DisplayDateLayout formats dates printed on the report.
const DisplayDateLayout = "January 2, 2006"

// NewReportID returns PREFIX-YYYYMM-NNNN with a suffix in [1000, 9999].
func NewReportID(prefix string, t time.Time, r *rand.Rand) string {
	return fmt.Sprintf("%s-%04d%02d-%04d", prefix, t.Year(), int(t.Month()), 1000+r.IntN(9000))
}

// FileName returns PREFIX_Make_Model_Year_ID.pdf. Make, model and year are
// reduced to ASCII letters, digits and hyphens; missing parts fall back to
// "Vehicle", "Inspection" and the year of now.
func FileName(prefix string, v inspection.Vehicle, reportID string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%s_%s.pdf", prefix,
		orElse(sanitize(v.Make), "Vehicle"),
		orElse(sanitize(v.Model), "Inspection"),
		orElse(sanitize(v.Year), strconv.Itoa(now.Year())),
		reportID)
}

// DisplayDate returns the inspection date in long form, or now when the
// record has no valid date.
func DisplayDate(v inspection.Vehicle, now time.Time) string {
	if t, ok := v.InspectionDate(); ok {
		return t.Format(DisplayDateLayout)
	}
	return now.Format(DisplayDateLayout)
}

func sanitize(s string) string {
	// transformers are stateful, build one per call
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '-':
			return r
		default:
			return -1
		}
	}, folded)
}

func orElse(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
