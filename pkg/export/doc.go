// Package export renders documents to external formats.
//
// # Overview
//
// This package converts an editor document into Graphviz DOT source
// and, from there, into SVG. It is the bridge between the live editor
// and anything outside it: saved diagrams, documentation, external
// Graphviz tooling.
//
// # Usage
//
// Convert a document to DOT, then render to SVG:
//
//	dot := export.ToDOT(ed.State(), export.Options{Detailed: true})
//	svg, err := export.RenderSVG(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses left-to-right layout (rankdir=LR) and pins
// every column to a Graphviz rank, so the exported diagram preserves
// the editor's column structure. Cursor nodes are filled, dangling
// ports appear as small points.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package export
