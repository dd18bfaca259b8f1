package editor

// Action is a command consumed by Reduce. The set is closed: every
// variant lives in this file and Reduce matches all of them. Actions
// addressed at entities that no longer exist leave the state
// unchanged.
type Action interface{ isAction() }

// Direction names the four cursor navigation moves.
type Direction int

const (
	// DirLeft moves each cursor to its structural parent.
	DirLeft Direction = iota
	// DirRight fans each cursor out to all of its forward children.
	DirRight
	// DirUp moves each cursor to the previous sibling.
	DirUp
	// DirDown moves each cursor to the next sibling.
	DirDown
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "unknown"
}

// InsertAfter splices a new node directly after every cursor target:
// descendants shift one column right, the target's forward edges are
// re-threaded onto the new node, and the new node is connected to the
// target's terminal port. Cursors move to the new nodes.
type InsertAfter struct{}

// InsertBranch attaches a new sibling off each cursor's structural
// parent (or off the cursor node itself when it is a root), leaving
// the parent's existing forward structure untouched.
type InsertBranch struct{}

// MoveCursor navigates every cursor one step in the given direction.
type MoveCursor struct {
	Dir Direction
}

// SetCursor makes the node the sole, primary cursor.
type SetCursor struct {
	Node ID
}

// AddCursor appends a cursor on the node, preserving existing cursors.
type AddCursor struct {
	Node ID
}

// StartSelecting begins a marquee gesture at a world position.
type StartSelecting struct {
	Pos Vec
}

// UpdateSelecting extends the marquee to the current pointer position
// and recomputes the selection from scratch.
type UpdateSelecting struct {
	Pos Vec
}

// EndSelecting finishes the marquee: each selected node becomes a
// cursor (first primary). An empty selection leaves cursors unchanged.
type EndSelecting struct{}

// StartDrag begins a node drag. Origins is the drag-start position of
// every targeted node, captured once by the caller from the
// override-applied layout. Clicked identifies the node under the
// pointer; if it is outside the cursor/selection set it becomes the
// sole focus.
type StartDrag struct {
	Clicked ID
	Pointer Vec
	Origins map[ID]Vec
}

// Drag moves an active node drag. The override written for each node
// is its fixed start position plus the total pointer delta, never an
// accumulation of per-event deltas.
type Drag struct {
	Pointer Vec
}

// EndDrag finishes a node drag, keeping the written overrides.
type EndDrag struct{}

// StartPortDrag begins dragging a dangling port or an edge midpoint.
// Key is the port or edge id; StartPos its position at drag start.
type StartPortDrag struct {
	Key      ID
	Pointer  Vec
	StartPos Vec
}

// PortDrag moves an active port drag using the same fixed-start-delta
// rule as node drags.
type PortDrag struct {
	Pointer Vec
}

// EndPortDrag finishes a port drag, keeping the override.
type EndPortDrag struct{}

func (InsertAfter) isAction()     {}
func (InsertBranch) isAction()    {}
func (MoveCursor) isAction()      {}
func (SetCursor) isAction()       {}
func (AddCursor) isAction()       {}
func (StartSelecting) isAction()  {}
func (UpdateSelecting) isAction() {}
func (EndSelecting) isAction()    {}
func (StartDrag) isAction()       {}
func (Drag) isAction()            {}
func (EndDrag) isAction()         {}
func (StartPortDrag) isAction()   {}
func (PortDrag) isAction()        {}
func (EndPortDrag) isAction()     {}

// Name returns a short identifier for logging and metrics.
func Name(a Action) string {
	switch a.(type) {
	case InsertAfter:
		return "insert_after"
	case InsertBranch:
		return "insert_branch"
	case MoveCursor:
		return "move_cursor"
	case SetCursor:
		return "set_cursor"
	case AddCursor:
		return "add_cursor"
	case StartSelecting:
		return "start_selecting"
	case UpdateSelecting:
		return "update_selecting"
	case EndSelecting:
		return "end_selecting"
	case StartDrag:
		return "start_drag"
	case Drag:
		return "drag"
	case EndDrag:
		return "end_drag"
	case StartPortDrag:
		return "start_port_drag"
	case PortDrag:
		return "port_drag"
	case EndPortDrag:
		return "end_port_drag"
	}
	return "unknown"
}
