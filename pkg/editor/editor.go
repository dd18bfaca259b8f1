package editor

import (
	"time"

	"github.com/google/uuid"

	"github.com/skeinlab/skein/pkg/observability"
)

// Editor owns one document: the single state cell, the reducer that is
// its sole mutator, and a layout memo. Instances are fully independent
// of each other; ids, overrides, and counters are never shared, and an
// instance is identified by a uuid rather than process-global state.
//
// Everything is single-threaded and synchronous: every dispatched
// action completes atomically before the next event arrives. An Editor
// must not be shared across goroutines without external
// synchronization.
type Editor struct {
	id      string
	state   State
	reducer Reducer
	cfg     HitConfig

	layoutMemo Positions
	memoRev    uint64
	memoValid  bool
}

// Option configures a new Editor.
type Option func(*Editor)

// WithSpacing sets the layout spacing constants.
func WithSpacing(sp Spacing) Option {
	return func(e *Editor) { e.reducer = NewReducer(sp) }
}

// WithHitConfig sets the pointer hit-test geometry.
func WithHitConfig(cfg HitConfig) Option {
	return func(e *Editor) { e.cfg = cfg }
}

// WithState replaces the starting document. Used by tests.
func WithState(s State) Option {
	return func(e *Editor) { e.state = s }
}

// New creates an editor seeded with the starting document: one root
// node carrying a primary cursor.
func New(opts ...Option) *Editor {
	e := &Editor{
		id:      uuid.NewString(),
		state:   NewState(),
		reducer: NewReducer(DefaultSpacing()),
		cfg:     DefaultHitConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the instance identifier.
func (e *Editor) ID() string { return e.id }

// State returns the current document state. Callers must treat it as
// read-only; all mutation goes through Dispatch.
func (e *Editor) State() State { return e.state }

// Spacing returns the layout spacing in effect.
func (e *Editor) Spacing() Spacing { return e.reducer.Spacing }

// HitConfig returns the pointer hit-test geometry in effect.
func (e *Editor) HitConfig() HitConfig { return e.cfg }

// Controller returns a fresh interaction controller bound to this
// editor's hit geometry.
func (e *Editor) Controller() *Controller { return NewController(e.cfg) }

// Dispatch reduces one action into the state cell.
func (e *Editor) Dispatch(a Action) {
	start := time.Now()
	e.state = e.reducer.Reduce(e.state, a)
	observability.Editor().OnDispatch(Name(a), time.Since(start))
}

// Layout returns positions for the current state. The result is
// memoized on the state's layout revision, which only moves when
// topology or overrides change; correctness does not depend on the
// memo, it only skips identical recomputations during cursor and
// selection churn.
func (e *Editor) Layout() Positions {
	if e.memoValid && e.memoRev == e.state.LayoutRev {
		observability.Editor().OnLayout(len(e.state.Nodes), true, 0)
		return e.layoutMemo
	}
	start := time.Now()
	e.layoutMemo = Layout(e.state, e.reducer.Spacing)
	e.memoRev = e.state.LayoutRev
	e.memoValid = true
	observability.Editor().OnLayout(len(e.state.Nodes), false, time.Since(start))
	return e.layoutMemo
}

// Snapshot returns the rendering contract: the full graph, the
// override-applied positions, cursor styling, and the marquee
// rectangle while one is active.
func (e *Editor) Snapshot() Snapshot {
	return BuildSnapshot(e.id, e.state, e.Layout())
}
