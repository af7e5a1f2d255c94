package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/inspectreport/pkg/cache"
	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

// Summary is the score breakdown of a record.
type Summary struct {
	Vehicle    string            `json:"vehicle"`
	Overall    int               `json:"overall"`
	Verdict    string            `json:"verdict"`
	Checklist  int               `json:"checklist"`
	Photos     int               `json:"photos"`
	Categories []CategorySummary `json:"categories"`
}

// CategorySummary is one row of the checklist breakdown.
type CategorySummary struct {
	Name     string `json:"name"`
	Items    int    `json:"items"`
	Scorable int    `json:"scorable"`
	Warnings int    `json:"warnings"`
	Score    int    `json:"score"`
	Result   string `json:"result"`
}

// Summarize computes the score breakdown. The overall score comes from the
// record or, when absent, from s; it is not derived from the checklist.
func Summarize(rec *inspection.Record, s inspection.Scorer) Summary {
	overall := min(100, max(0, rec.OverallScore(s)))
	sum := Summary{
		Vehicle:   rec.Vehicle.Title(),
		Overall:   overall,
		Verdict:   style.ForScore(overall).Verdict(),
		Checklist: inspection.ChecklistScore(rec.Checklist),
		Photos:    rec.PhotoCount(),
	}
	for _, c := range rec.Checklist {
		_, total := c.Tally()
		score := inspection.CategoryScore(c)
		sum.Categories = append(sum.Categories, CategorySummary{
			Name:     c.Name,
			Items:    len(c.Items()),
			Scorable: total,
			Warnings: c.WarnCount(),
			Score:    score,
			Result:   style.ForScore(score).Label(),
		})
	}
	return sum
}

// Score returns the summary of rec, cached by record content.
func (r *Runner) Score(ctx context.Context, rec *inspection.Record, s inspection.Scorer) (Summary, bool, error) {
	hash, err := cache.RecordHash(rec)
	if err != nil {
		return Summary{}, false, err
	}
	key := r.Keyer.ScoreKey(hash)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var sum Summary
		if json.Unmarshal(data, &sum) == nil {
			return sum, true, nil
		}
	}
	sum := Summarize(rec, s)
	if data, err := json.Marshal(sum); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.ScoreTTL)
	}
	return sum, false, nil
}
