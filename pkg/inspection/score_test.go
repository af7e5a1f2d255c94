package inspection

import "testing"

func TestConditionScorer(t *testing.T) {
	tests := []struct {
		name       string
		conditions []Condition
		want       int
	}{
		{"no sections", nil, 85},
		{"all excellent", []Condition{Excellent, Excellent}, 100},
		{"mixed", []Condition{Excellent, Good, Fair, Poor}, 73}, // 290/4 = 72.5
		{"missing counts as 85", []Condition{Excellent, ""}, 93},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Record{}
			for _, c := range tt.conditions {
				rec.Sections = append(rec.Sections, PhotoSection{ID: string(c), Condition: c})
			}
			if got := (ConditionScorer{}).Score(rec); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOverallScore(t *testing.T) {
	score := 42
	rec := &Record{Score: &score, Sections: []PhotoSection{{ID: "a", Condition: Excellent}}}
	if got := rec.OverallScore(nil); got != 42 {
		t.Errorf("explicit score: got %d, want 42", got)
	}

	rec.Score = nil
	if got := rec.OverallScore(nil); got != 100 {
		t.Errorf("derived score: got %d, want 100", got)
	}

	over := ScorerFunc(func(*Record) int { return 140 })
	if got := rec.OverallScore(over); got != 100 {
		t.Errorf("clamped score: got %d, want 100", got)
	}
}
