package editor

import (
	"slices"
	"testing"
)

// chainState builds n0 -> n1 by dispatching InsertAfter on the seeded
// root, returning the state and the two node ids.
func chainState(t *testing.T) (State, ID, ID) {
	t.Helper()
	r := NewReducer(DefaultSpacing())
	s := NewState()
	root := s.Cursors[0].Node
	s = r.Reduce(s, InsertAfter{})
	if len(s.Cursors) != 1 {
		t.Fatalf("cursors after insert = %d, want 1", len(s.Cursors))
	}
	return s, root, s.Cursors[0].Node
}

// forkState builds a root with two forward children (the second added
// via InsertBranch) and returns root, first child, second child.
func forkState(t *testing.T) (State, ID, ID, ID) {
	t.Helper()
	r := NewReducer(DefaultSpacing())
	s, root, first := chainState(t)
	s = r.Reduce(s, InsertBranch{})
	second := s.Cursors[0].Node
	if second == first {
		t.Fatalf("branch returned existing node %d", first)
	}
	return s, root, first, second
}

func TestForwardChildren(t *testing.T) {
	s, root, first, second := forkState(t)

	got := ForwardChildren(s, root)
	want := []ID{first, second}
	if !slices.Equal(got, want) {
		t.Fatalf("ForwardChildren(root) = %v, want %v", got, want)
	}

	if kids := ForwardChildren(s, first); kids != nil {
		t.Errorf("ForwardChildren(leaf) = %v, want none", kids)
	}
	if kids := ForwardChildren(s, 9999); kids != nil {
		t.Errorf("ForwardChildren(missing) = %v, want none", kids)
	}
}

func TestForwardChildrenColumnsIncrease(t *testing.T) {
	s, _, _, _ := forkState(t)

	// Every forward edge strictly increases the column, everywhere.
	for id := range s.Nodes {
		for _, child := range ForwardChildren(s, id) {
			if s.Nodes[child].Column <= s.Nodes[id].Column {
				t.Errorf("column(%d)=%d not greater than column(%d)=%d",
					child, s.Nodes[child].Column, id, s.Nodes[id].Column)
			}
		}
	}
}

func TestStructuralParent(t *testing.T) {
	s, root, first, second := forkState(t)

	for _, child := range []ID{first, second} {
		parent, ok := StructuralParent(s, child)
		if !ok || parent != root {
			t.Errorf("StructuralParent(%d) = %d, %v, want %d, true", child, parent, ok, root)
		}
	}

	if _, ok := StructuralParent(s, root); ok {
		t.Error("StructuralParent(root) found a parent, want none")
	}
	if _, ok := StructuralParent(s, 9999); ok {
		t.Error("StructuralParent(missing) found a parent, want none")
	}
}

func TestDescendants(t *testing.T) {
	r := NewReducer(DefaultSpacing())
	s, root, first, second := forkState(t)

	// Extend the first child so descendants span two generations.
	s = r.Reduce(s, SetCursor{Node: first})
	s = r.Reduce(s, InsertAfter{})
	grandchild := s.Cursors[0].Node

	got := Descendants(s, root)
	for _, want := range []ID{first, second, grandchild} {
		if !slices.Contains(got, want) {
			t.Errorf("Descendants(root) = %v, missing %d", got, want)
		}
	}
	if slices.Contains(got, root) {
		t.Error("Descendants(root) contains the start node")
	}

	if d := Descendants(s, 9999); d != nil {
		t.Errorf("Descendants(missing) = %v, want none", d)
	}
}

func TestDescendantsDiamondVisitedOnce(t *testing.T) {
	// Diamond: a -> {b, c} -> d. The shared descendant is reported
	// once and traversal terminates.
	s := emptyState()
	a := allocNode(&s, 0)
	b := allocNode(&s, 1)
	c := allocNode(&s, 1)
	d := allocNode(&s, 2)
	connect(&s, s.Nodes[a].Terminal, s.Nodes[b].Initial)
	connect(&s, s.Nodes[a].Terminal, s.Nodes[c].Initial)
	connect(&s, s.Nodes[b].Terminal, s.Nodes[d].Initial)
	connect(&s, s.Nodes[c].Terminal, s.Nodes[d].Initial)

	got := Descendants(s, a)
	want := []ID{b, c, d}
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Fatalf("Descendants = %v, want %v", got, want)
	}
}

func TestRoots(t *testing.T) {
	s, root, _, _ := forkState(t)
	if got := Roots(s); !slices.Equal(got, []ID{root}) {
		t.Fatalf("Roots = %v, want [%d]", got, root)
	}

	// A second, disconnected node is also a root.
	extra := allocNode(&s, 0)
	got := Roots(s)
	if !slices.Contains(got, root) || !slices.Contains(got, extra) {
		t.Fatalf("Roots = %v, want both %d and %d", got, root, extra)
	}
}

func TestPortEdgeSymmetry(t *testing.T) {
	s, _, _, _ := forkState(t)

	// Every edge id appears in exactly the two ports it connects.
	for id, e := range s.Edges {
		for _, portID := range []ID{e.From, e.To} {
			p, ok := s.Ports[portID]
			if !ok {
				t.Fatalf("edge %d references missing port %d", id, portID)
			}
			if !slices.Contains(p.Edges, id) {
				t.Errorf("port %d missing edge %d", portID, id)
			}
		}
	}
	for portID, p := range s.Ports {
		for _, edgeID := range p.Edges {
			e, ok := s.Edges[edgeID]
			if !ok {
				t.Fatalf("port %d lists missing edge %d", portID, edgeID)
			}
			if e.From != portID && e.To != portID {
				t.Errorf("port %d lists edge %d that does not touch it", portID, edgeID)
			}
		}
	}
}

func TestEveryNodeHasBothPorts(t *testing.T) {
	s, _, _, _ := forkState(t)
	for id, n := range s.Nodes {
		init, ok := s.Ports[n.Initial]
		if !ok || init.Side != SideInitial || init.Node != id {
			t.Errorf("node %d initial port malformed", id)
		}
		term, ok := s.Ports[n.Terminal]
		if !ok || term.Side != SideTerminal || term.Node != id {
			t.Errorf("node %d terminal port malformed", id)
		}
	}
}
