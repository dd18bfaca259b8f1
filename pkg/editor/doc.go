// Package editor implements the graph-based visual program editor: an
// in-memory node/port/edge model, an automatic tree layout, and the
// pointer/keyboard interaction machinery that lets a user build and
// navigate a column-ranked directed graph by typing and clicking.
//
// # Overview
//
// A document is a [State]: id-indexed arenas of [Node], [Port], and
// [Edge] values plus cursors, selection, the active gesture, and
// manual position overrides. Every node owns exactly one initial
// (inbound) and one terminal (outbound) port for its entire lifetime,
// and edges connect ports, never nodes. A node's integer column is its
// generation rank; forward edges strictly increase it, and that strict
// inequality is the only thing separating child edges from parent
// edges.
//
// # Mutation
//
// All mutation flows through [Reducer.Reduce], a pure function from
// state and [Action] to the next state. [Editor] owns the single state
// cell, dispatches actions, and memoizes [Layout] output on a revision
// counter. Structural operations only ever add entities; nothing in
// this package deletes a node, and malformed references degrade to
// no-ops instead of errors.
//
// # Interaction
//
// [Controller] turns world-coordinate pointer and keyboard events into
// actions: hit-testing nodes before ports before marquee, and holding
// a press "pending" until cumulative travel decides between click and
// drag. The active gesture is the closed [Interaction] sum
// ([Normal], [Selecting], [Dragging], [PortDragging]).
//
// # Basic Usage
//
//	ed := editor.New()
//	ed.Dispatch(editor.InsertAfter{})
//	positions := ed.Layout()
//	snap := ed.Snapshot()
//
// Rendering is a collaborator's concern: consumers read [Snapshot],
// which carries the full graph, final positions, cursor styling, and
// the marquee rectangle.
package editor
