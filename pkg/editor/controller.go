package editor

import "slices"

// HitConfig holds the pixel geometry of pointer disambiguation.
type HitConfig struct {
	// NodeRadius is the hit radius around a node center.
	NodeRadius float64 `toml:"node_radius"`
	// PortRadius is the smaller hit radius around dangling ports and
	// edge midpoints.
	PortRadius float64 `toml:"port_radius"`
	// DragThreshold is the cumulative pointer travel after which a
	// pending press promotes to a drag instead of a click.
	DragThreshold float64 `toml:"drag_threshold"`
}

// DefaultHitConfig returns the hit-testing defaults.
func DefaultHitConfig() HitConfig {
	return HitConfig{NodeRadius: 20, PortRadius: 10, DragThreshold: 4}
}

// Modifiers carries the modifier keys active during a pointer event.
type Modifiers struct {
	// Add is the add-cursor modifier: a modified click on a node only
	// appends a cursor and never starts a drag.
	Add bool
}

// pendingKind tags what a not-yet-disambiguated press landed on.
type pendingKind int

const (
	pendingNode pendingKind = iota
	pendingPort
)

// pendingHit is a press whose click-vs-drag resolution is still open.
type pendingHit struct {
	kind    pendingKind
	target  ID
	start   Vec
	portPos Vec // position of the port/midpoint at press time
	last    Vec
	travel  float64
}

// Controller translates raw pointer and keyboard events, already in
// world coordinates, into actions dispatched on an editor. It owns the
// click/drag pending bookkeeping; everything that outlives a gesture
// lives in the state's Interaction variant.
type Controller struct {
	cfg     HitConfig
	pending *pendingHit
}

// NewController returns a controller with the given hit geometry,
// falling back to DefaultHitConfig for a zero value.
func NewController(cfg HitConfig) *Controller {
	if cfg == (HitConfig{}) {
		cfg = DefaultHitConfig()
	}
	return &Controller{cfg: cfg}
}

// PointerDown hit-tests in priority order: node first, then dangling
// port or edge midpoint, otherwise a marquee begins.
func (c *Controller) PointerDown(ed *Editor, pos Vec, mods Modifiers) {
	c.pending = nil
	positions := ed.Layout()

	if node, ok := hitNode(positions, pos, c.cfg.NodeRadius); ok {
		if mods.Add {
			ed.Dispatch(AddCursor{Node: node})
			return
		}
		c.pending = &pendingHit{kind: pendingNode, target: node, start: pos, last: pos}
		return
	}

	if key, keyPos, ok := hitPortKey(positions, pos, c.cfg.PortRadius); ok {
		c.pending = &pendingHit{kind: pendingPort, target: key, start: pos, portPos: keyPos, last: pos}
		return
	}

	ed.Dispatch(StartSelecting{Pos: pos})
}

// PointerMove advances the active gesture. A pending press promotes to
// a drag once its cumulative travel exceeds the threshold.
func (c *Controller) PointerMove(ed *Editor, pos Vec) {
	if p := c.pending; p != nil {
		p.travel += pos.Dist(p.last)
		p.last = pos
		if p.travel <= c.cfg.DragThreshold {
			return
		}
		c.pending = nil
		switch p.kind {
		case pendingNode:
			ed.Dispatch(StartDrag{
				Clicked: p.target,
				Pointer: p.start,
				Origins: dragOrigins(ed.State(), ed.Layout(), p.target),
			})
		case pendingPort:
			ed.Dispatch(StartPortDrag{Key: p.target, Pointer: p.start, StartPos: p.portPos})
		}
		c.PointerMove(ed, pos)
		return
	}

	switch ed.State().Interaction.(type) {
	case Selecting:
		ed.Dispatch(UpdateSelecting{Pos: pos})
	case Dragging:
		ed.Dispatch(Drag{Pointer: pos})
	case PortDragging:
		ed.Dispatch(PortDrag{Pointer: pos})
	}
}

// PointerUp resolves the gesture. A press that never crossed the drag
// threshold is a plain click: on a node it becomes the sole cursor, on
// a port it does nothing.
func (c *Controller) PointerUp(ed *Editor, pos Vec) {
	if p := c.pending; p != nil {
		c.pending = nil
		if p.kind == pendingNode {
			ed.Dispatch(SetCursor{Node: p.target})
		}
		return
	}

	switch ed.State().Interaction.(type) {
	case Selecting:
		ed.Dispatch(EndSelecting{})
	case Dragging:
		ed.Dispatch(EndDrag{})
	case PortDragging:
		ed.Dispatch(EndPortDrag{})
	}
}

// Key names the keyboard commands the editor understands.
type Key int

const (
	KeyNone Key = iota
	KeySpace
	KeyShiftSpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// KeyDown dispatches the keyboard commands: space inserts after every
// cursor, shifted space branches, arrows navigate. The caller is
// responsible for withholding events while a text input has focus.
func (c *Controller) KeyDown(ed *Editor, key Key) {
	switch key {
	case KeySpace:
		ed.Dispatch(InsertAfter{})
	case KeyShiftSpace:
		ed.Dispatch(InsertBranch{})
	case KeyLeft:
		ed.Dispatch(MoveCursor{Dir: DirLeft})
	case KeyRight:
		ed.Dispatch(MoveCursor{Dir: DirRight})
	case KeyUp:
		ed.Dispatch(MoveCursor{Dir: DirUp})
	case KeyDown:
		ed.Dispatch(MoveCursor{Dir: DirDown})
	}
}

// dragOrigins captures the drag-start positions, once, from the
// override-applied layout. The drag set is the cursor/selection set
// when the clicked node belongs to it, otherwise just the clicked
// node.
func dragOrigins(s State, positions Positions, clicked ID) map[ID]Vec {
	targets := []ID{clicked}
	group := append(cursorTargets(s), s.Selection...)
	if slices.Contains(group, clicked) {
		targets = group
	}
	origins := make(map[ID]Vec, len(targets))
	for _, id := range targets {
		if p, ok := positions.Nodes[id]; ok {
			origins[id] = p
		}
	}
	return origins
}

// hitNode returns the nearest node within radius. Ties resolve to the
// lower id so repeated hit tests are stable.
func hitNode(positions Positions, pos Vec, radius float64) (ID, bool) {
	best := ID(0)
	bestDist := radius
	found := false
	for _, id := range sortedKeys(positions.Nodes) {
		d := positions.Nodes[id].Dist(pos)
		if d < bestDist || (!found && d == bestDist) {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}

// hitPortKey returns the nearest dangling port or edge midpoint within
// radius along with its current position.
func hitPortKey(positions Positions, pos Vec, radius float64) (ID, Vec, bool) {
	best := ID(0)
	bestPos := Vec{}
	bestDist := radius
	found := false
	scan := func(m map[ID]Vec) {
		for _, id := range sortedKeys(m) {
			d := m[id].Dist(pos)
			if d < bestDist || (!found && d == bestDist) {
				best, bestPos, bestDist, found = id, m[id], d, true
			}
		}
	}
	scan(positions.Ports)
	scan(positions.Edges)
	return best, bestPos, found
}

func sortedKeys(m map[ID]Vec) []ID {
	out := make([]ID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
