package editor

import "maps"

// ID identifies a node, port, or edge. All three entity kinds share one
// monotonically increasing counter owned by the state cell, so an ID is
// unambiguous across the whole document. The zero value is never
// allocated and acts as "no entity".
type ID int

// Side distinguishes the two ports every node carries.
type Side int

const (
	// SideInitial is the inbound attachment point of a node.
	SideInitial Side = iota
	// SideTerminal is the outbound attachment point of a node.
	SideTerminal
)

// String returns "initial" or "terminal".
func (s Side) String() string {
	if s == SideTerminal {
		return "terminal"
	}
	return "initial"
}

// Node is one computational step in the graph. Column is its integer
// generation rank: every forward edge strictly increases it, which is
// the sole mechanism separating child edges from parent edges.
type Node struct {
	ID       ID     `json:"id"`
	Column   int    `json:"column"`
	Label    string `json:"label,omitempty"`
	Initial  ID     `json:"initial"`  // inbound port, set for the node's entire lifetime
	Terminal ID     `json:"terminal"` // outbound port, set for the node's entire lifetime
}

// Port is a directional attachment point on a node. A port with an
// empty edge list is dangling: an open, unterminated connection point.
type Port struct {
	ID    ID   `json:"id"`
	Node  ID   `json:"node"`
	Side  Side `json:"side"`
	Edges []ID `json:"edges,omitempty"` // ordered; order drives sibling up/down navigation
}

// Dangling reports whether the port has no connected edge.
func (p Port) Dangling() bool { return len(p.Edges) == 0 }

// Edge connects two ports, never nodes directly.
type Edge struct {
	ID   ID `json:"id"`
	From ID `json:"from"`
	To   ID `json:"to"`
}

// Cursor is a navigable focus point over the graph. Several may
// coexist; when any exist, exactly one is primary.
type Cursor struct {
	Node    ID   `json:"node"`
	Primary bool `json:"primary"`
}

// State is the complete editor document: id-indexed entity arenas, the
// cursor and selection sets, the current gesture, manual position
// overrides, and the instance-owned id counter. It is only ever
// changed by Reduce, which returns a fresh value.
type State struct {
	Nodes map[ID]Node
	Ports map[ID]Port
	Edges map[ID]Edge

	Cursors   []Cursor
	Selection []ID // marquee result, sorted by id; transient

	Interaction Interaction

	// Manual placements layered over the computed layout. A present
	// entry fully supersedes the computed position for that id.
	NodeOverrides map[ID]Vec
	PortOverrides map[ID]Vec // keyed by dangling-port id or edge id (midpoint)

	// NextID is the next unallocated id. Owned by this state cell so
	// independent editor instances never collide.
	NextID ID

	// LayoutRev increases whenever topology or overrides change.
	// Cursor and selection moves leave it untouched, so layout results
	// can be memoized against it.
	LayoutRev uint64
}

// NewState returns the starting document: a single root node with two
// dangling ports and a primary cursor on it. All further entities are
// created through insertion actions.
func NewState() State {
	s := emptyState()
	root := allocNode(&s, 0)
	s.Cursors = []Cursor{{Node: root, Primary: true}}
	return s
}

// emptyState returns a state with no entities. Used by NewState and by
// tests that build graphs action by action.
func emptyState() State {
	return State{
		Nodes:         make(map[ID]Node),
		Ports:         make(map[ID]Port),
		Edges:         make(map[ID]Edge),
		Interaction:   Normal{},
		NodeOverrides: make(map[ID]Vec),
		PortOverrides: make(map[ID]Vec),
		NextID:        1,
	}
}

// clone returns a deep copy of the state's maps and slices so a reducer
// step can mutate freely without aliasing the previous state.
func (s State) clone() State {
	out := s
	out.Nodes = maps.Clone(s.Nodes)
	out.Ports = make(map[ID]Port, len(s.Ports))
	for id, p := range s.Ports {
		p.Edges = append([]ID(nil), p.Edges...)
		out.Ports[id] = p
	}
	out.Edges = maps.Clone(s.Edges)
	out.Cursors = append([]Cursor(nil), s.Cursors...)
	out.Selection = append([]ID(nil), s.Selection...)
	out.NodeOverrides = maps.Clone(s.NodeOverrides)
	out.PortOverrides = maps.Clone(s.PortOverrides)
	return out
}

// alloc hands out the next id.
func alloc(s *State) ID {
	id := s.NextID
	s.NextID++
	return id
}

// allocNode creates a node at the given column together with its
// initial and terminal ports and returns the node id.
func allocNode(s *State, column int) ID {
	nodeID := alloc(s)
	initID := alloc(s)
	termID := alloc(s)
	s.Nodes[nodeID] = Node{ID: nodeID, Column: column, Initial: initID, Terminal: termID}
	s.Ports[initID] = Port{ID: initID, Node: nodeID, Side: SideInitial}
	s.Ports[termID] = Port{ID: termID, Node: nodeID, Side: SideTerminal}
	return nodeID
}

// connect creates an edge between two ports and appends it to both
// ports' ordered edge lists.
func connect(s *State, from, to ID) ID {
	edgeID := alloc(s)
	s.Edges[edgeID] = Edge{ID: edgeID, From: from, To: to}
	appendPortEdge(s, from, edgeID)
	appendPortEdge(s, to, edgeID)
	return edgeID
}

func appendPortEdge(s *State, portID, edgeID ID) {
	p, ok := s.Ports[portID]
	if !ok {
		return
	}
	p.Edges = append(p.Edges, edgeID)
	s.Ports[portID] = p
}

// detachEdge removes the edge from the edge arena and from both
// endpoint ports. Missing ids are tolerated.
func detachEdge(s *State, edgeID ID) {
	e, ok := s.Edges[edgeID]
	if !ok {
		return
	}
	delete(s.Edges, edgeID)
	removePortEdge(s, e.From, edgeID)
	removePortEdge(s, e.To, edgeID)
}

func removePortEdge(s *State, portID, edgeID ID) {
	p, ok := s.Ports[portID]
	if !ok {
		return
	}
	kept := p.Edges[:0]
	for _, id := range p.Edges {
		if id != edgeID {
			kept = append(kept, id)
		}
	}
	p.Edges = kept
	s.Ports[portID] = p
}

// normalizeCursors deduplicates cursors by target, keeping first
// occurrence order, and re-establishes the single-primary invariant:
// the previous primary keeps its flag if its target survives,
// otherwise the first cursor becomes primary.
func normalizeCursors(cursors []Cursor) []Cursor {
	if len(cursors) == 0 {
		return nil
	}
	var primaryTarget ID
	for _, c := range cursors {
		if c.Primary {
			primaryTarget = c.Node
			break
		}
	}
	seen := make(map[ID]bool, len(cursors))
	out := make([]Cursor, 0, len(cursors))
	for _, c := range cursors {
		if seen[c.Node] {
			continue
		}
		seen[c.Node] = true
		out = append(out, Cursor{Node: c.Node})
	}
	idx := 0
	for i, c := range out {
		if c.Node == primaryTarget {
			idx = i
			break
		}
	}
	out[idx].Primary = true
	return out
}
