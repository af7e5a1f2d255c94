package inspection

import (
	"strings"
	"testing"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

func TestValidateTemplate(t *testing.T) {
	rec := NewRecord(Vehicle{Make: "Toyota", Model: "Corolla", Year: "2019"})
	if err := rec.Validate(); err != nil {
		t.Fatalf("template should validate: %v", err)
	}
}

func TestProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		want   string
	}{
		{"score range", func(r *Record) { s := 101; r.Score = &s }, "out of range"},
		{"negative mileage", func(r *Record) { r.Vehicle.Mileage = -1 }, "negative"},
		{"bad date", func(r *Record) { r.Vehicle.Date = "19/10/2026" }, "YYYY-MM-DD"},
		{"duplicate section", func(r *Record) { r.Sections[1].ID = r.Sections[0].ID }, "duplicate id"},
		{"unknown condition", func(r *Record) { r.Sections[0].Condition = "Mint" }, "unknown condition"},
		{"warn not subset", func(r *Record) {
			r.Checklist[0].Subsections[0].Items[0].WarnOptions = []string{"Shattered"}
		}, "is not an option"},
		{"choice without options", func(r *Record) {
			r.Checklist[0].Subsections[0].Items[0].Options = nil
		}, "without options"},
		{"unknown kind", func(r *Record) {
			r.Checklist[0].Subsections[0].Items[0].Kind = "slider"
		}, "unknown kind"},
		{"duplicate item", func(r *Record) {
			items := r.Checklist[0].Subsections[0].Items
			items[1].ID = items[0].ID
		}, "duplicate item id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord(Vehicle{})
			tt.mutate(rec)
			err := rec.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errs.Is(err, errs.ErrCodeInvalidRecord) {
				t.Errorf("code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidRecord)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestUnknownValueIsNotAProblem(t *testing.T) {
	rec := NewRecord(Vehicle{})
	rec.Checklist[0].Subsections[0].Items[0].Value = "Unheard of"
	if p := rec.Problems(); len(p) != 0 {
		t.Errorf("Problems() = %v, want none", p)
	}
}
