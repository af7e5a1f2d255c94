package inspection

import (
	"fmt"
	"slices"
	"strings"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// Problems returns every structural problem of the record, empty when the
// record can be rendered. Unknown checklist values are not problems: they
// fall back to the item's first option.
func (r *Record) Problems() []string {
	var out []string
	add := func(format string, args ...any) {
		out = append(out, fmt.Sprintf(format, args...))
	}

	if r.Score != nil && (*r.Score < 0 || *r.Score > 100) {
		add("score %d out of range [0,100]", *r.Score)
	}
	if r.Vehicle.Mileage < 0 {
		add("mileage %d is negative", r.Vehicle.Mileage)
	}
	if r.Vehicle.Date != "" {
		if _, ok := r.Vehicle.InspectionDate(); !ok {
			add("date %q is not YYYY-MM-DD", r.Vehicle.Date)
		}
	}

	seen := make(map[string]bool)
	for i, sec := range r.Sections {
		switch {
		case sec.ID == "":
			add("section %d: missing id", i+1)
		case seen[sec.ID]:
			add("section %s: duplicate id", sec.ID)
		}
		seen[sec.ID] = true
		if sec.Condition != "" && !sec.Condition.Valid() {
			add("section %s: unknown condition %q (want one of %v)", sec.ID, sec.Condition, Conditions())
		}
	}

	cats := make(map[string]bool)
	for i, cat := range r.Checklist {
		switch {
		case cat.ID == "":
			add("category %d: missing id", i+1)
		case cats[cat.ID]:
			add("category %s: duplicate id", cat.ID)
		}
		cats[cat.ID] = true

		items := make(map[string]bool)
		for _, it := range cat.Items() {
			where := cat.ID + "/" + it.ID
			switch {
			case it.ID == "":
				add("category %s: item %q has no id", cat.ID, it.Label)
				continue
			case items[it.ID]:
				add("%s: duplicate item id", where)
			}
			items[it.ID] = true

			switch it.Kind {
			case "", KindChoice:
				if len(it.Options) == 0 {
					add("%s: choice item without options", where)
				}
				for _, w := range it.WarnOptions {
					if !slices.Contains(it.Options, w) {
						add("%s: warn option %q is not an option", where, w)
					}
				}
			case KindText:
				if len(it.WarnOptions) > 0 {
					add("%s: text item declares warn options", where)
				}
			default:
				add("%s: unknown kind %q", where, it.Kind)
			}
		}
	}
	return out
}

// Validate returns an INVALID_RECORD error listing every problem, or nil.
func (r *Record) Validate() error {
	problems := r.Problems()
	if len(problems) == 0 {
		return nil
	}
	return errs.New(errs.ErrCodeInvalidRecord, "%s", strings.Join(problems, "; "))
}
