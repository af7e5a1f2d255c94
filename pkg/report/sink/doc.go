// Package sink serializes finished report documents.
//
// # Overview
//
// A "sink" transforms a [report.Document] into a final output format.
// This package provides renderers for:
//
//   - PDF: the print deliverable, built with github.com/wudi/pdfkit
//   - PNG: all pages stacked into one raster image, drawn with fogleman/gg
//   - SVG: all pages stacked into one vector image
//   - JSON: a page and operation dump for diffing and tooling
//
// Sinks never change the layout: every page is already final, footers
// included, when a document reaches them. They only translate millimetre
// coordinates with a top-left origin into the target's coordinate system.
//
// # Usage
//
//	data, err := sink.Render(ctx, doc, sink.PDF)
//
// or call a renderer directly for format-specific options:
//
//	png, err := sink.RenderPNG(doc, sink.WithScale(4), sink.WithPages(0))
//
// # Text encoding
//
// PDF output uses the standard Helvetica faces with WinAnsi encoding, so
// text is converted to Windows-1252 before it is written. Characters outside
// that code page were already dropped or replaced by the composers.
//
// # Images
//
// Photos carry a content fingerprint; identical photos are embedded once per
// document in PDF and SVG output.
package sink
