// Package pkg provides the libraries behind inspectreport, a pagination and
// layout engine for vehicle inspection reports.
//
// # Overview
//
// An inspection record (vehicle data, photographed sections with a condition
// each, a checklist of categorized items and an overall score) is laid out
// as a fixed-size multi-page document and serialized by a sink:
//
//	record.json (+ photos)
//	         ↓
//	    [inspection] package (decode, resolve photos, validate, score)
//	         ↓
//	    [report] package (cover → photo sections → checklist → footer pass)
//	         ↓
//	    [report/sink] package (PDF, PNG, SVG, JSON)
//
// # Quick Start
//
//	rec, warnings, err := inspection.ReadFile("inspection.json")
//	if err != nil {
//	    return err
//	}
//	for _, w := range warnings {
//	    log.Warn("photo not loaded", "err", w) // drawn as a placeholder
//	}
//	doc, err := report.Generate(ctx, rec, report.WithTheme(style.DefaultTheme()))
//	if err != nil {
//	    return err
//	}
//	pdf, err := sink.RenderPDF(ctx, doc)
//
// # Main Packages
//
// ## Layout Engine
//
// [report/style] - Theme: page geometry, layout constants, brand strings and
// the colour palette, plus the single score classifier.
//
// [report/page] - Page model. A page is a list of drawing ops (rect, line,
// text, image) in millimetres with a top-left origin.
//
// [report/flow] - Vertical cursor that breaks pages before a fixed-height row
// would cross the printable bound.
//
// [report/table], [report/grid] - Column tables and 4:3 photo grids drawn
// through the cursor.
//
// [report/compose] - Cover, photo-section and checklist-category composers.
//
// [report] - Document assembler: a state machine over the composers
// followed by a pure footer pass that numbers every page.
//
// ## Orchestration
//
// [pipeline] - Parse → layout → render with artifact caching and batch
// execution. Used by both the CLI and the HTTP server.
//
// [cache] - Artifact cache backends: file, Redis and null.
//
// [archive] - Archive of generated reports: file and MongoDB (GridFS).
//
// [server] - HTTP API over the pipeline and the archive.
//
// ## Support
//
// [config] - TOML configuration. [errors] - Coded errors.
// [observability] - Hooks for cache, pipeline and HTTP events.
// [fonts] - Text metrics and raster faces. [buildinfo] - Version data.
//
// # Testing
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/report/...          # Layout engine only
//	go test -run Example ./pkg/...    # Examples only
//
// [inspection]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/inspection
// [report]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/report
// [report/sink]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/report/sink
// [report/style]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/report/style
// [report/page]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/report/page
// [report/flow]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/report/flow
// [report/table]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/report/table
// [report/grid]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/report/grid
// [report/compose]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/report/compose
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/cache
// [archive]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/archive
// [server]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/observability
// [fonts]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/inspectreport/pkg/buildinfo
package pkg
