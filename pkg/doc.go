// Package pkg provides the core libraries for the Skein graph editor.
//
// # Overview
//
// Skein is a visual editor for graph documents: nodes arranged in
// columns, connected through ports, navigated with multiple cursors.
// The pkg directory is organized into five areas:
//
//  1. [editor] - Document model, layout engine, reducer, interaction
//  2. [export] - DOT and SVG rendering of documents
//  3. [observability] - Hooks for metrics without framework coupling
//  4. [errors] - Structured error types shared by CLI and API
//  5. [httputil] - HTTP client utilities (retry with backoff)
//
// # Architecture
//
// The typical data flow through Skein:
//
//	Pointer/Keyboard events
//	         ↓
//	    [editor] Controller (hit testing, click/drag disambiguation)
//	         ↓
//	    [editor] Reducer (pure state transitions)
//	         ↓
//	    [editor] Layout (tree packing, overrides)
//	         ↓
//	    Snapshot → TUI canvas / JSON API / [export] DOT/SVG
//
// # Quick Start
//
// Create an editor, dispatch actions, and read back positions:
//
//	import "github.com/skeinlab/skein/pkg/editor"
//
//	ed := editor.New()
//	ed.Dispatch(editor.InsertAfter{})
//	positions := ed.Layout()
//	snap := ed.Snapshot()
//
// The cmd/skein CLI wires these packages into the interactive
// terminal editor, the export command, and the snapshot HTTP server.
//
// [editor]: github.com/skeinlab/skein/pkg/editor
// [export]: github.com/skeinlab/skein/pkg/export
// [observability]: github.com/skeinlab/skein/pkg/observability
// [errors]: github.com/skeinlab/skein/pkg/errors
// [httputil]: github.com/skeinlab/skein/pkg/httputil
package pkg
