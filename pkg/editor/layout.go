package editor

import "maps"

// Spacing holds the world-space constants of the tree layout.
type Spacing struct {
	// Column is the horizontal distance between adjacent columns.
	Column float64 `toml:"column"`
	// Branch is the vertical distance between adjacent rows.
	Branch float64 `toml:"branch"`
	// RootGap is the number of empty rows kept between root subtrees.
	RootGap float64 `toml:"root_gap"`
	// PortOffset is the horizontal distance of a port anchor from its
	// owning node's center.
	PortOffset float64 `toml:"port_offset"`
}

// DefaultSpacing returns the spacing used when no config overrides it.
func DefaultSpacing() Spacing {
	return Spacing{Column: 120, Branch: 40, RootGap: 1, PortOffset: 30}
}

// Positions is the full spatial output of a layout pass: one entry per
// node, per dangling port, and per edge midpoint. Overrides are
// already applied; consumers must never reach behind this map to the
// raw computed values.
type Positions struct {
	Nodes map[ID]Vec `json:"nodes"`
	Ports map[ID]Vec `json:"ports"` // dangling ports only, world positions
	Edges map[ID]Vec `json:"edges"` // midpoint per edge

	// Anchors holds the attachment point of every port, dangling or
	// not, derived from the final node positions. Edge endpoints are
	// drawn from here.
	Anchors map[ID]Vec `json:"-"`
}

// Layout computes positions for the entire document. It is a pure
// function of the state: two calls without an intervening mutation
// return identical results.
//
// Roots (nodes with a dangling initial port) are laid out one after
// another, each packing its subtree recursively; independent root
// subtrees never overlap because the vertical offset accumulates each
// root's height plus a fixed gap. Nodes unreachable from any root are
// parked one row below everything else instead of failing.
func Layout(s State, sp Spacing) Positions {
	nodes := computedNodePositions(s, sp)
	for id, ov := range s.NodeOverrides {
		if _, ok := nodes[id]; ok {
			nodes[id] = ov
		}
	}

	anchors := make(map[ID]Vec, len(s.Ports))
	for id := range s.Ports {
		if anchor, ok := portAnchor(s, sp, nodes, id); ok {
			anchors[id] = anchor
		}
	}

	ports := make(map[ID]Vec)
	for _, portID := range DanglingPorts(s) {
		anchor, ok := anchors[portID]
		if !ok {
			continue
		}
		if ov, ok := s.PortOverrides[portID]; ok {
			anchor = ov
		}
		ports[portID] = anchor
	}

	edges := make(map[ID]Vec, len(s.Edges))
	for id, e := range s.Edges {
		from, okF := anchors[e.From]
		to, okT := anchors[e.To]
		if !okF || !okT {
			continue
		}
		mid := from.Mid(to)
		if ov, ok := s.PortOverrides[id]; ok {
			mid = ov
		}
		edges[id] = mid
	}

	return Positions{Nodes: nodes, Ports: ports, Edges: edges, Anchors: anchors}
}

// computedNodePositions maps columns and packed rows to world space
// without applying overrides. The marquee selection test reads these
// raw values so that in-progress drags never affect what a rectangle
// captures.
func computedNodePositions(s State, sp Spacing) map[ID]Vec {
	rows, maxRow := packRows(s, sp)
	out := make(map[ID]Vec, len(s.Nodes))
	strayRow := maxRow + 1
	for id, n := range s.Nodes {
		row, ok := rows[id]
		if !ok {
			row = strayRow
		}
		out[id] = Vec{X: float64(n.Column) * sp.Column, Y: -row * sp.Branch}
	}
	return out
}

// packRows assigns a relative row to every node reachable from a root
// and returns the highest row handed out.
func packRows(s State, sp Spacing) (map[ID]float64, float64) {
	rows := make(map[ID]float64, len(s.Nodes))
	offset := 0.0
	maxRow := 0.0
	for _, root := range Roots(s) {
		h := packSubtree(s, root, offset, map[ID]bool{}, rows)
		bottom := offset + h - 1
		if bottom > maxRow {
			maxRow = bottom
		}
		offset += h + sp.RootGap
	}
	return rows, maxRow
}

// packSubtree lays out the subtree under id starting at row and
// returns its total height in rows. A leaf contributes height 1; a
// node with children stacks the child subtrees and centers itself at
// the midpoint between its topmost and bottommost child.
//
// Each recursive call receives its own copy of the visited set.
// Divergent branches may legitimately revisit a shared descendant (a
// non-tree cross edge) without being flagged as a cycle; only a true
// cycle along one path terminates with height 0. This per-branch
// copying is a semantic requirement, not a cloning accident.
func packSubtree(s State, id ID, row float64, visited map[ID]bool, rows map[ID]float64) float64 {
	if visited[id] {
		return 0
	}
	visited[id] = true

	children := ForwardChildren(s, id)
	if len(children) == 0 {
		rows[id] = row
		return 1
	}

	y := row
	var first, last float64
	placed := false
	for _, child := range children {
		h := packSubtree(s, child, y, maps.Clone(visited), rows)
		if h == 0 {
			continue
		}
		childRow := rows[child]
		if !placed {
			first = childRow
			placed = true
		}
		last = childRow
		y += h
	}
	if !placed {
		rows[id] = row
		return 1
	}
	rows[id] = (first + last) / 2
	return y - row
}

// portAnchor returns the world position where a port attaches: the
// owning node's (override-applied) position shifted left for the
// initial side and right for the terminal side.
func portAnchor(s State, sp Spacing, nodes map[ID]Vec, portID ID) (Vec, bool) {
	p, ok := s.Ports[portID]
	if !ok {
		return Vec{}, false
	}
	base, ok := nodes[p.Node]
	if !ok {
		return Vec{}, false
	}
	if p.Side == SideInitial {
		return Vec{X: base.X - sp.PortOffset, Y: base.Y}, true
	}
	return Vec{X: base.X + sp.PortOffset, Y: base.Y}, true
}
