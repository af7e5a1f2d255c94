package inspection_test

import (
	"fmt"

	"github.com/matzehuels/inspectreport/pkg/inspection"
)

func ExampleCategoryScore() {
	cat := inspection.ChecklistCategory{
		ID:   "brakes",
		Name: "Brakes",
		Subsections: []inspection.Subsection{{
			Name: "Pads",
			Items: []inspection.ChecklistItem{
				{ID: "fr_pad", Options: []string{"Ok", "Worn"}, WarnOptions: []string{"Worn"}, Value: "Worn"},
				{ID: "fl_pad", Options: []string{"Ok", "Worn"}, WarnOptions: []string{"Worn"}, Value: "Ok"},
				{ID: "rr_pad", Options: []string{"Ok", "Worn"}, WarnOptions: []string{"Worn"}},
				{ID: "brand", Kind: inspection.KindText, Value: "Brembo"},
			},
		}},
	}
	fmt.Println(inspection.CategoryScore(cat))
	// Output: 67
}
