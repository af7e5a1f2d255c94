package inspection

import "math"

// DefaultMissingScore is the contribution of a section without a condition.
const DefaultMissingScore = 85

// Scorer derives the overall condition score of a record.
type Scorer interface {
	Score(rec *Record) int
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(rec *Record) int

// Score calls f(rec).
func (f ScorerFunc) Score(rec *Record) int { return f(rec) }

// ConditionScore maps a condition to its score contribution.
func ConditionScore(c Condition) (int, bool) {
	switch c {
	case Excellent:
		return 100, true
	case Good:
		return 85, true
	case Fair:
		return 65, true
	case Poor:
		return 40, true
	}
	return 0, false
}

// ConditionScorer averages ConditionScore over the record's sections.
// Sections without a condition contribute Missing (DefaultMissingScore when
// zero). The checklist is not consulted.
type ConditionScorer struct {
	Missing int
}

// Score implements Scorer.
func (s ConditionScorer) Score(rec *Record) int {
	missing := s.Missing
	if missing == 0 {
		missing = DefaultMissingScore
	}
	if len(rec.Sections) == 0 {
		return missing
	}
	sum := 0
	for _, sec := range rec.Sections {
		v, ok := ConditionScore(sec.Condition)
		if !ok {
			v = missing
		}
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(rec.Sections))))
}

// OverallScore returns rec.Score when set, otherwise s's score clamped to
// [0,100]. A nil s means ConditionScorer{}.
func (r *Record) OverallScore(s Scorer) int {
	if r.Score != nil {
		return *r.Score
	}
	if s == nil {
		s = ConditionScorer{}
	}
	return min(100, max(0, s.Score(r)))
}
