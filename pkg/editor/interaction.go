package editor

// Interaction is the current gesture, a closed sum: exactly one
// variant is active at any time and every consumer matches
// exhaustively. It is never a string mode with optional extras.
type Interaction interface{ isInteraction() }

// Normal means no gesture is in progress.
type Normal struct{}

// Selecting is an active marquee between the gesture start and the
// current pointer position.
type Selecting struct {
	Start   Vec
	Current Vec
}

// Dragging is an active node drag. Origins holds each targeted node's
// position at drag start; every move derives overrides from these
// fixed snapshots so replayed or dropped events cannot drift.
type Dragging struct {
	StartPointer Vec
	Origins      map[ID]Vec
}

// PortDragging is an active drag of a dangling port or edge midpoint.
type PortDragging struct {
	Key          ID
	StartPointer Vec
	StartPos     Vec
}

func (Normal) isInteraction()       {}
func (Selecting) isInteraction()    {}
func (Dragging) isInteraction()     {}
func (PortDragging) isInteraction() {}

// Marquee returns the normalized marquee rectangle and true while a
// selection gesture is active.
func Marquee(s State) (Rect, bool) {
	sel, ok := s.Interaction.(Selecting)
	if !ok {
		return Rect{}, false
	}
	return RectBetween(sel.Start, sel.Current), true
}
