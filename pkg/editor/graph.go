package editor

import "slices"

// Traversal helpers over the entity arenas. Direction is never stored
// on an edge: an edge is "forward" exactly when it leads to a node in
// a strictly greater column, and "backward" when the column is
// strictly smaller. An edge between equal columns has no defined
// direction and is never yielded by either traversal.
//
// Every helper tolerates missing ids by returning no result.

// neighborPort returns the port at the far end of the edge, seen from
// the given port.
func neighborPort(s State, edgeID, portID ID) (ID, bool) {
	e, ok := s.Edges[edgeID]
	if !ok {
		return 0, false
	}
	switch portID {
	case e.From:
		return e.To, true
	case e.To:
		return e.From, true
	}
	return 0, false
}

// forwardEdges returns the edges on the node's terminal port that lead
// to a strictly greater column, preserving port order.
func forwardEdges(s State, nodeID ID) []ID {
	n, ok := s.Nodes[nodeID]
	if !ok {
		return nil
	}
	term, ok := s.Ports[n.Terminal]
	if !ok {
		return nil
	}
	var out []ID
	for _, edgeID := range term.Edges {
		otherPort, ok := neighborPort(s, edgeID, term.ID)
		if !ok {
			continue
		}
		p, ok := s.Ports[otherPort]
		if !ok {
			continue
		}
		other, ok := s.Nodes[p.Node]
		if !ok || other.Column <= n.Column {
			continue
		}
		out = append(out, edgeID)
	}
	return out
}

// ForwardChildren returns the nodes reached over the terminal port
// whose column is strictly greater than the node's own, in the order
// the connecting edges appear on the port.
func ForwardChildren(s State, nodeID ID) []ID {
	n, ok := s.Nodes[nodeID]
	if !ok {
		return nil
	}
	var out []ID
	for _, edgeID := range forwardEdges(s, nodeID) {
		otherPort, _ := neighborPort(s, edgeID, n.Terminal)
		if p, ok := s.Ports[otherPort]; ok {
			out = append(out, p.Node)
		}
	}
	return out
}

// StructuralParent returns the first neighbor over the initial port
// whose column is strictly smaller, or false for a root.
func StructuralParent(s State, nodeID ID) (ID, bool) {
	n, ok := s.Nodes[nodeID]
	if !ok {
		return 0, false
	}
	init, ok := s.Ports[n.Initial]
	if !ok {
		return 0, false
	}
	for _, edgeID := range init.Edges {
		otherPort, ok := neighborPort(s, edgeID, init.ID)
		if !ok {
			continue
		}
		p, ok := s.Ports[otherPort]
		if !ok {
			continue
		}
		other, ok := s.Nodes[p.Node]
		if !ok {
			continue
		}
		if other.Column < n.Column {
			return other.ID, true
		}
	}
	return 0, false
}

// Descendants returns every node reachable over ForwardChildren,
// breadth-first, excluding the start node. The visited set guarantees
// termination even if column comparisons are locally inconsistent.
func Descendants(s State, nodeID ID) []ID {
	if _, ok := s.Nodes[nodeID]; !ok {
		return nil
	}
	visited := map[ID]bool{nodeID: true}
	queue := []ID{nodeID}
	var out []ID
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range ForwardChildren(s, cur) {
			if visited[child] {
				continue
			}
			visited[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

// Roots returns the nodes whose initial port is dangling, sorted by id
// for deterministic layout.
func Roots(s State) []ID {
	var out []ID
	for id, n := range s.Nodes {
		if p, ok := s.Ports[n.Initial]; ok && p.Dangling() {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// DanglingPorts returns every open connection point, sorted by id.
func DanglingPorts(s State) []ID {
	var out []ID
	for id, p := range s.Ports {
		if p.Dangling() {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// cursorTargets returns the node ids the cursors currently sit on, in
// cursor order.
func cursorTargets(s State) []ID {
	out := make([]ID, 0, len(s.Cursors))
	for _, c := range s.Cursors {
		out = append(out, c.Node)
	}
	return out
}
