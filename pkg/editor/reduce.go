package editor

import (
	"maps"
	"slices"
	"sort"
)

// Reducer is the sole mutator of a State. Reduce is pure: it returns a
// fresh state and never touches the input. Spacing is needed because
// the marquee selection test reads computed node positions.
//
// Malformed input degrades to a no-op. An action addressed at an
// entity that does not exist, or a gesture event arriving while the
// interaction is in the wrong variant, returns the state unchanged.
type Reducer struct {
	Spacing Spacing
}

// NewReducer returns a reducer with the given spacing, falling back to
// DefaultSpacing for zero values.
func NewReducer(sp Spacing) Reducer {
	if sp == (Spacing{}) {
		sp = DefaultSpacing()
	}
	return Reducer{Spacing: sp}
}

// Reduce applies one action and returns the next state.
func (r Reducer) Reduce(s State, a Action) State {
	switch act := a.(type) {
	case InsertAfter:
		return r.insertAfterAll(s)
	case InsertBranch:
		return r.insertBranchAll(s)
	case MoveCursor:
		return r.moveCursors(s, act.Dir)
	case SetCursor:
		return r.setCursor(s, act.Node)
	case AddCursor:
		return r.addCursor(s, act.Node)
	case StartSelecting:
		return r.startSelecting(s, act.Pos)
	case UpdateSelecting:
		return r.updateSelecting(s, act.Pos)
	case EndSelecting:
		return r.endSelecting(s)
	case StartDrag:
		return r.startDrag(s, act)
	case Drag:
		return r.drag(s, act.Pointer)
	case EndDrag:
		return r.endDrag(s)
	case StartPortDrag:
		return r.startPortDrag(s, act)
	case PortDrag:
		return r.portDrag(s, act.Pointer)
	case EndPortDrag:
		return r.endPortDrag(s)
	}
	return s
}

// =============================================================================
// Insertion
// =============================================================================

// insertAfterAll splices one new node after every distinct cursor
// target. Targets are processed deepest first (descending column) so
// that one insertion's column shift never double-shifts another
// pending insertion. The cursor set is replaced by one cursor per new
// node, the first flagged primary.
func (r Reducer) insertAfterAll(s State) State {
	targets := existingTargets(s, cursorTargets(s))
	if len(targets) == 0 {
		return s
	}
	sort.Slice(targets, func(i, j int) bool {
		a, b := s.Nodes[targets[i]], s.Nodes[targets[j]]
		if a.Column != b.Column {
			return a.Column > b.Column
		}
		return a.ID < b.ID
	})

	next := s.clone()
	var created []ID
	for _, t := range targets {
		if nn := spliceAfter(&next, t); nn != 0 {
			created = append(created, nn)
		}
	}
	if len(created) == 0 {
		return s
	}
	next.Cursors = freshCursors(created)
	next.Selection = nil
	next.LayoutRev++
	return next
}

// spliceAfter inserts a new node strictly between target and whatever
// followed it, returning the new node id (0 when target is missing).
func spliceAfter(s *State, target ID) ID {
	t, ok := s.Nodes[target]
	if !ok {
		return 0
	}

	// Make room: the whole forward subtree moves one column right.
	for _, d := range Descendants(*s, target) {
		n := s.Nodes[d]
		n.Column++
		s.Nodes[d] = n
	}

	forward := forwardEdges(*s, target)
	nn := allocNode(s, t.Column+1)
	fresh := s.Nodes[nn]

	// Re-thread existing forward structure onto the new node, with
	// fresh edge ids. The old edge ids are discarded.
	for _, edgeID := range forward {
		otherPort, ok := neighborPort(*s, edgeID, t.Terminal)
		if !ok {
			continue
		}
		detachEdge(s, edgeID)
		connect(s, fresh.Terminal, otherPort)
	}

	connect(s, t.Terminal, fresh.Initial)
	return nn
}

// insertBranchAll attaches one new sibling per cursor. Branching
// resolves to the cursor's structural parent, or the cursor node
// itself when it is a root: the new node is an additional forward
// child of the parent, not a splice. This asymmetry with insertAfter
// is deliberate and the two operations are kept distinct.
func (r Reducer) insertBranchAll(s State) State {
	targets := existingTargets(s, cursorTargets(s))
	if len(targets) == 0 {
		return s
	}

	next := s.clone()
	var created []ID
	for _, t := range targets {
		parent := t
		if p, ok := StructuralParent(next, t); ok {
			parent = p
		}
		pn, ok := next.Nodes[parent]
		if !ok {
			continue
		}
		nn := allocNode(&next, pn.Column+1)
		connect(&next, pn.Terminal, next.Nodes[nn].Initial)
		created = append(created, nn)
	}
	if len(created) == 0 {
		return s
	}
	next.Cursors = freshCursors(created)
	next.Selection = nil
	next.LayoutRev++
	return next
}

// =============================================================================
// Cursor commands
// =============================================================================

// moveCursors navigates all cursors one step. Boundaries clamp: a
// childless cursor stays put on right, a root stays on left, and
// up/down stop at the first and last sibling.
func (r Reducer) moveCursors(s State, dir Direction) State {
	if len(s.Cursors) == 0 {
		return s
	}

	var moved []Cursor
	for _, c := range s.Cursors {
		if _, ok := s.Nodes[c.Node]; !ok {
			moved = append(moved, c)
			continue
		}
		switch dir {
		case DirRight:
			children := ForwardChildren(s, c.Node)
			if len(children) == 0 {
				moved = append(moved, c)
				break
			}
			for _, child := range children {
				moved = append(moved, Cursor{Node: child})
			}
		case DirLeft:
			if parent, ok := StructuralParent(s, c.Node); ok {
				moved = append(moved, Cursor{Node: parent, Primary: c.Primary})
			} else {
				moved = append(moved, c)
			}
		case DirUp, DirDown:
			moved = append(moved, Cursor{Node: siblingStep(s, c.Node, dir), Primary: c.Primary})
		default:
			moved = append(moved, c)
		}
	}

	next := s.clone()
	next.Cursors = normalizeCursors(moved)
	next.Selection = nil
	return next
}

// siblingStep moves to the previous or next entry among the parent's
// forward children, clamped at the ends. Roots stay where they are.
func siblingStep(s State, node ID, dir Direction) ID {
	parent, ok := StructuralParent(s, node)
	if !ok {
		return node
	}
	siblings := ForwardChildren(s, parent)
	idx := slices.Index(siblings, node)
	if idx < 0 {
		return node
	}
	if dir == DirUp {
		idx--
	} else {
		idx++
	}
	if idx < 0 || idx >= len(siblings) {
		return node
	}
	return siblings[idx]
}

func (r Reducer) setCursor(s State, node ID) State {
	if _, ok := s.Nodes[node]; !ok {
		return s
	}
	next := s.clone()
	next.Cursors = []Cursor{{Node: node, Primary: true}}
	next.Selection = nil
	return next
}

func (r Reducer) addCursor(s State, node ID) State {
	if _, ok := s.Nodes[node]; !ok {
		return s
	}
	next := s.clone()
	next.Cursors = normalizeCursors(append(next.Cursors, Cursor{Node: node}))
	return next
}

// =============================================================================
// Marquee selection
// =============================================================================

func (r Reducer) startSelecting(s State, pos Vec) State {
	next := s.clone()
	next.Interaction = Selecting{Start: pos, Current: pos}
	next.Selection = nil
	return next
}

// updateSelecting recomputes the selection from scratch on every move:
// the set of nodes whose computed position falls inside the rectangle.
// Raw computed positions are used, not drag overrides.
func (r Reducer) updateSelecting(s State, pos Vec) State {
	sel, ok := s.Interaction.(Selecting)
	if !ok {
		return s
	}
	sel.Current = pos
	rect := RectBetween(sel.Start, sel.Current)

	var inside []ID
	for id, p := range computedNodePositions(s, r.Spacing) {
		if rect.Contains(p) {
			inside = append(inside, id)
		}
	}
	slices.Sort(inside)

	next := s.clone()
	next.Interaction = sel
	next.Selection = inside
	return next
}

// endSelecting turns each selected node into a cursor, first primary.
// An empty selection leaves the existing cursors alone.
func (r Reducer) endSelecting(s State) State {
	if _, ok := s.Interaction.(Selecting); !ok {
		return s
	}
	next := s.clone()
	next.Interaction = Normal{}
	if len(next.Selection) > 0 {
		next.Cursors = freshCursors(next.Selection)
	}
	return next
}

// =============================================================================
// Dragging
// =============================================================================

// startDrag begins a node drag. Restarting a drag clears all previous
// node overrides; the captured origins already reflect them. A click
// outside the cursor/selection set collapses focus onto the clicked
// node.
func (r Reducer) startDrag(s State, act StartDrag) State {
	if _, ok := s.Interaction.(Normal); !ok {
		return s
	}
	if _, ok := s.Nodes[act.Clicked]; !ok {
		return s
	}
	if len(act.Origins) == 0 {
		return s
	}

	next := s.clone()
	if !slices.Contains(cursorTargets(next), act.Clicked) && !slices.Contains(next.Selection, act.Clicked) {
		next.Cursors = []Cursor{{Node: act.Clicked, Primary: true}}
		next.Selection = nil
	}
	next.NodeOverrides = make(map[ID]Vec)
	next.Interaction = Dragging{StartPointer: act.Pointer, Origins: maps.Clone(act.Origins)}
	next.LayoutRev++
	return next
}

// drag writes override = origin + (pointer - startPointer) for every
// dragged node. Overrides always derive from the fixed start snapshot,
// never from the previous move, so events can be dropped or replayed
// at any rate without drift.
func (r Reducer) drag(s State, pointer Vec) State {
	d, ok := s.Interaction.(Dragging)
	if !ok {
		return s
	}
	delta := pointer.Sub(d.StartPointer)

	next := s.clone()
	for id, origin := range d.Origins {
		if _, ok := next.Nodes[id]; ok {
			next.NodeOverrides[id] = origin.Add(delta)
		}
	}
	next.LayoutRev++
	return next
}

func (r Reducer) endDrag(s State) State {
	if _, ok := s.Interaction.(Dragging); !ok {
		return s
	}
	next := s.clone()
	next.Interaction = Normal{}
	return next
}

// startPortDrag begins dragging a dangling port or edge midpoint.
// Like node drags, restarting clears the previous port overrides.
func (r Reducer) startPortDrag(s State, act StartPortDrag) State {
	if _, ok := s.Interaction.(Normal); !ok {
		return s
	}
	_, isPort := s.Ports[act.Key]
	_, isEdge := s.Edges[act.Key]
	if !isPort && !isEdge {
		return s
	}

	next := s.clone()
	next.PortOverrides = make(map[ID]Vec)
	next.Interaction = PortDragging{Key: act.Key, StartPointer: act.Pointer, StartPos: act.StartPos}
	next.LayoutRev++
	return next
}

func (r Reducer) portDrag(s State, pointer Vec) State {
	d, ok := s.Interaction.(PortDragging)
	if !ok {
		return s
	}
	next := s.clone()
	next.PortOverrides[d.Key] = d.StartPos.Add(pointer.Sub(d.StartPointer))
	next.LayoutRev++
	return next
}

func (r Reducer) endPortDrag(s State) State {
	if _, ok := s.Interaction.(PortDragging); !ok {
		return s
	}
	next := s.clone()
	next.Interaction = Normal{}
	return next
}

// =============================================================================
// Helpers
// =============================================================================

// existingTargets filters ids down to those that resolve to a node.
func existingTargets(s State, ids []ID) []ID {
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := s.Nodes[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// freshCursors builds a replacement cursor set, first entry primary.
func freshCursors(targets []ID) []Cursor {
	out := make([]Cursor, len(targets))
	for i, id := range targets {
		out[i] = Cursor{Node: id, Primary: i == 0}
	}
	return out
}
