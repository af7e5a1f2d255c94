// Package inspection defines the immutable input of a report: one vehicle
// inspection with its photographed sections, checklist answers and overall
// condition score.
//
// # Records
//
// A [Record] is read once per report, usually with [ReadFile], and never
// mutated while a report is generated. Photos are raw raster payloads carried
// inline as data URLs or referenced by a path relative to the record file:
//
//	{
//	  "vehicle": {"make": "Toyota", "model": "Corolla", "year": "2019"},
//	  "sections": [
//	    {"id": "front_exterior", "name": "Front Exterior", "condition": "Good",
//	     "photos": ["photos/front-1.jpg", "data:image/jpeg;base64,/9j/4AAQ..."]}
//	  ],
//	  "checklist": [...],
//	  "score": 88
//	}
//
// # Checklist scores
//
// [CategoryScore] derives a 0-100 score for one checklist category from the
// share of scorable items whose current value is not a warn option. Items
// with a missing or unknown value fall back to their first option, see
// [ChecklistItem.ResolvedValue].
//
// # Templates
//
// [NewRecord] builds a record from the default catalog of eight photographed
// sections and eleven checklist categories with every item at its default
// value. The CLI's init command writes such a template for inspectors to fill.
package inspection
