package editor

import "slices"

// Snapshot is the output contract for rendering collaborators: the
// whole graph with final positions, the cursor list split into primary
// and secondary styling, dangling ports, routed edges, and the marquee
// rectangle while a selection gesture is active. It carries everything
// a renderer needs and nothing it must compute.
type Snapshot struct {
	Editor   string       `json:"editor"`
	Nodes    []NodeView   `json:"nodes"`
	Edges    []EdgeView   `json:"edges"`
	Ports    []PortView   `json:"ports"` // dangling ports only
	Cursors  []CursorView `json:"cursors"`
	Selected []ID         `json:"selected,omitempty"`
	Marquee  *Rect        `json:"marquee,omitempty"`
}

// NodeView is a node with its final, override-applied position.
type NodeView struct {
	ID     ID     `json:"id"`
	Column int    `json:"column"`
	Label  string `json:"label,omitempty"`
	Pos    Vec    `json:"pos"`
}

// EdgeView is an edge with its endpoint anchors and routed midpoint.
type EdgeView struct {
	ID   ID  `json:"id"`
	From ID  `json:"from"` // port id
	To   ID  `json:"to"`   // port id
	Src  Vec `json:"src"`
	Mid  Vec `json:"mid"`
	Dst  Vec `json:"dst"`
}

// PortView is an open connection point with its final position.
type PortView struct {
	ID   ID     `json:"id"`
	Node ID     `json:"node"`
	Side string `json:"side"`
	Pos  Vec    `json:"pos"`
}

// CursorView pairs a cursor with its node's position.
type CursorView struct {
	Node    ID   `json:"node"`
	Primary bool `json:"primary"`
	Pos     Vec  `json:"pos"`
}

// BuildSnapshot assembles the rendering contract from a state and its
// positions. Output slices are ordered by id so consecutive snapshots
// of the same document are comparable.
func BuildSnapshot(editorID string, s State, positions Positions) Snapshot {
	snap := Snapshot{Editor: editorID}

	for _, id := range sortedKeys(positions.Nodes) {
		n := s.Nodes[id]
		snap.Nodes = append(snap.Nodes, NodeView{
			ID: id, Column: n.Column, Label: n.Label, Pos: positions.Nodes[id],
		})
	}

	for _, id := range sortedKeys(positions.Edges) {
		e := s.Edges[id]
		src, to := anchorPair(positions, e)
		snap.Edges = append(snap.Edges, EdgeView{
			ID: id, From: e.From, To: e.To, Src: src, Mid: positions.Edges[id], Dst: to,
		})
	}

	for _, id := range sortedKeys(positions.Ports) {
		p := s.Ports[id]
		snap.Ports = append(snap.Ports, PortView{
			ID: id, Node: p.Node, Side: p.Side.String(), Pos: positions.Ports[id],
		})
	}

	for _, c := range s.Cursors {
		pos, ok := positions.Nodes[c.Node]
		if !ok {
			continue
		}
		snap.Cursors = append(snap.Cursors, CursorView{Node: c.Node, Primary: c.Primary, Pos: pos})
	}

	snap.Selected = slices.Clone(s.Selection)
	if rect, ok := Marquee(s); ok {
		snap.Marquee = &rect
	}
	return snap
}

// anchorPair resolves an edge's endpoint anchor positions through the
// final port anchors.
func anchorPair(positions Positions, e Edge) (Vec, Vec) {
	return positions.Anchors[e.From], positions.Anchors[e.To]
}
