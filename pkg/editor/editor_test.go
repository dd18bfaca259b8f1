package editor

import (
	"testing"
	"time"

	"github.com/skeinlab/skein/pkg/observability"
)

type countingHooks struct {
	dispatches int
	layouts    int
	cacheHits  int
}

func (h *countingHooks) OnDispatch(string, time.Duration) { h.dispatches++ }

func (h *countingHooks) OnLayout(_ int, cached bool, _ time.Duration) {
	h.layouts++
	if cached {
		h.cacheHits++
	}
}

func TestEditorsAreIndependent(t *testing.T) {
	a := New()
	b := New()

	if a.ID() == b.ID() {
		t.Fatal("two editors share an instance id")
	}

	a.Dispatch(InsertAfter{})
	a.Dispatch(InsertAfter{})

	if len(a.State().Nodes) != 3 {
		t.Errorf("editor a nodes = %d, want 3", len(a.State().Nodes))
	}
	if len(b.State().Nodes) != 1 {
		t.Errorf("editor b nodes = %d, want 1 untouched", len(b.State().Nodes))
	}
	// Counters never bleed across instances.
	if a.State().NextID == b.State().NextID {
		t.Error("id counters advanced in lockstep across instances")
	}
}

func TestLayoutMemoSkipsIdenticalPasses(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetEditorHooks(hooks)
	defer observability.Reset()

	ed := New()
	ed.Layout()
	ed.Layout() // same revision, served from memo

	if hooks.cacheHits != 1 {
		t.Errorf("cache hits = %d, want 1", hooks.cacheHits)
	}

	// Cursor movement does not touch topology, so the memo survives.
	ed.Dispatch(MoveCursor{Dir: DirLeft})
	ed.Layout()
	if hooks.cacheHits != 2 {
		t.Errorf("cache hits after cursor move = %d, want 2", hooks.cacheHits)
	}

	// An insertion invalidates it.
	ed.Dispatch(InsertAfter{})
	ed.Layout()
	if hooks.cacheHits != 2 {
		t.Errorf("cache hits after insert = %d, want still 2", hooks.cacheHits)
	}
	if hooks.dispatches != 2 {
		t.Errorf("dispatch events = %d, want 2", hooks.dispatches)
	}
}

func TestSnapshotContract(t *testing.T) {
	s, root, child := chainState(t)
	ed := New(WithState(s))

	snap := ed.Snapshot()

	if snap.Editor != ed.ID() {
		t.Errorf("snapshot editor = %q, want %q", snap.Editor, ed.ID())
	}
	if len(snap.Nodes) != 2 {
		t.Fatalf("snapshot nodes = %d, want 2", len(snap.Nodes))
	}
	// Ordered by id for comparable consecutive snapshots.
	if snap.Nodes[0].ID != root || snap.Nodes[1].ID != child {
		t.Errorf("node order = [%d %d], want [%d %d]",
			snap.Nodes[0].ID, snap.Nodes[1].ID, root, child)
	}

	if len(snap.Edges) != 1 {
		t.Fatalf("snapshot edges = %d, want 1", len(snap.Edges))
	}
	e := snap.Edges[0]
	if e.Src == e.Dst {
		t.Error("edge endpoints coincide")
	}
	if want := e.Src.Mid(e.Dst); e.Mid != want {
		t.Errorf("edge mid = %v, want %v", e.Mid, want)
	}

	// Only the two open ports appear: the root's initial and the
	// child's terminal.
	if len(snap.Ports) != 2 {
		t.Fatalf("snapshot ports = %d, want 2 dangling", len(snap.Ports))
	}
	if len(snap.Cursors) != 1 || snap.Cursors[0].Node != child || !snap.Cursors[0].Primary {
		t.Errorf("snapshot cursors = %+v, want primary on %d", snap.Cursors, child)
	}
	if snap.Marquee != nil {
		t.Error("marquee present outside a selection gesture")
	}
}
