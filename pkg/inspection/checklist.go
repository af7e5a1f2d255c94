package inspection

import (
	"math"
	"slices"
)

// ItemKind distinguishes free-text items from enumerated ones.
type ItemKind string

const (
	KindChoice ItemKind = "choice"
	KindText   ItemKind = "text"
)

// ItemStatus classifies an item's current value for display.
type ItemStatus int

const (
	// StatusNeutral is a free-text item or a choice item that is not scored.
	StatusNeutral ItemStatus = iota
	// StatusOK is a scored item whose value is not a warn option.
	StatusOK
	// StatusWarn is a choice item whose value is a warn option.
	StatusWarn
)

// ChecklistCategory is a named group of checklist items, e.g. "Brakes".
type ChecklistCategory struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Icon        string       `json:"icon,omitempty"`
	Subsections []Subsection `json:"subsections"`
}

// Subsection is a labelled run of items inside a category.
type Subsection struct {
	Name  string          `json:"name"`
	Items []ChecklistItem `json:"items"`
}

// ChecklistItem is one question of the checklist.
//
// A choice item is scored when it declares warn options. A declared but empty
// warn list ("warn": []) still makes the item scored: it always counts as
// good. Items without a warn list are shown but not scored.
type ChecklistItem struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Kind        ItemKind `json:"kind,omitempty"` // empty means choice
	Options     []string `json:"options,omitempty"`
	WarnOptions []string `json:"warn"`
	Value       string   `json:"value"`
}

// IsText reports whether the item takes free text.
func (it ChecklistItem) IsText() bool {
	return it.Kind == KindText
}

// Scorable reports whether the item counts towards its category score.
func (it ChecklistItem) Scorable() bool {
	return !it.IsText() && it.WarnOptions != nil
}

// ResolvedValue returns the current value. A choice item with a missing or
// unknown value falls back to its first option; a text item falls back to "".
func (it ChecklistItem) ResolvedValue() string {
	if it.IsText() {
		return it.Value
	}
	if slices.Contains(it.Options, it.Value) {
		return it.Value
	}
	if len(it.Options) > 0 {
		return it.Options[0]
	}
	return ""
}

// IsWarn reports whether the resolved value is one of the warn options.
func (it ChecklistItem) IsWarn() bool {
	return !it.IsText() && slices.Contains(it.WarnOptions, it.ResolvedValue())
}

// Status classifies the item for coloring.
func (it ChecklistItem) Status() ItemStatus {
	switch {
	case it.IsWarn():
		return StatusWarn
	case it.Scorable():
		return StatusOK
	default:
		return StatusNeutral
	}
}

// Items returns every item of the category in order.
func (c ChecklistCategory) Items() []ChecklistItem {
	var items []ChecklistItem
	for _, sub := range c.Subsections {
		items = append(items, sub.Items...)
	}
	return items
}

// Tally counts the scorable items of c and how many of them are good.
func (c ChecklistCategory) Tally() (good, total int) {
	for _, sub := range c.Subsections {
		for _, it := range sub.Items {
			if !it.Scorable() {
				continue
			}
			total++
			if !it.IsWarn() {
				good++
			}
		}
	}
	return good, total
}

// WarnCount returns the number of items currently holding a warn value.
func (c ChecklistCategory) WarnCount() int {
	n := 0
	for _, sub := range c.Subsections {
		for _, it := range sub.Items {
			if it.IsWarn() {
				n++
			}
		}
	}
	return n
}

// CategoryScore returns round(100*good/total) over the scorable items of c.
// A category without scorable items scores 100.
func CategoryScore(c ChecklistCategory) int {
	good, total := c.Tally()
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(good) / float64(total)))
}

// ChecklistScore returns the rounded mean of the category scores, 100 for an
// empty checklist.
func ChecklistScore(cats []ChecklistCategory) int {
	if len(cats) == 0 {
		return 100
	}
	sum := 0
	for _, c := range cats {
		sum += CategoryScore(c)
	}
	return int(math.Round(float64(sum) / float64(len(cats))))
}
