package export

import (
	"strings"
	"testing"

	"github.com/skeinlab/skein/pkg/editor"
)

func branchedState(t *testing.T) editor.State {
	t.Helper()
	r := editor.NewReducer(editor.DefaultSpacing())
	s := editor.NewState()
	s = r.Reduce(s, editor.InsertAfter{})
	s = r.Reduce(s, editor.InsertBranch{})
	return s
}

func TestToDOTStructure(t *testing.T) {
	s := branchedState(t)
	dot := ToDOT(s, Options{})

	if !strings.HasPrefix(dot, "digraph skein {") {
		t.Fatalf("missing digraph header:\n%s", dot)
	}
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("missing left-to-right rankdir")
	}

	// One declaration per node, one arrow per edge.
	for id := range s.Nodes {
		if !strings.Contains(dot, nodeName(id)) {
			t.Errorf("node %d missing from DOT output", id)
		}
	}
	edgeCount := strings.Count(dot, "\" -> \"")
	// Two structural edges plus one dotted stub per dangling port.
	want := len(s.Edges) + len(editor.DanglingPorts(s))
	if edgeCount != want {
		t.Errorf("arrow count = %d, want %d\n%s", edgeCount, want, dot)
	}
}

func TestToDOTPinsColumns(t *testing.T) {
	s := branchedState(t)
	dot := ToDOT(s, Options{})

	if !strings.Contains(dot, "rank=same") {
		t.Fatal("columns not pinned to ranks")
	}
	if !strings.Contains(dot, "// column 0") || !strings.Contains(dot, "// column 1") {
		t.Errorf("expected rank groups for columns 0 and 1:\n%s", dot)
	}
}

func TestToDOTHighlightsPrimaryCursor(t *testing.T) {
	s := branchedState(t)
	dot := ToDOT(s, Options{})

	primary := editor.ID(0)
	for _, c := range s.Cursors {
		if c.Primary {
			primary = c.Node
		}
	}
	line := ""
	for _, l := range strings.Split(dot, "\n") {
		if strings.Contains(l, nodeName(primary)+"\" [") {
			line = l
			break
		}
	}
	if !strings.Contains(line, "fillcolor=gold") {
		t.Errorf("primary cursor node not highlighted: %q", line)
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	s := branchedState(t)

	plain := ToDOT(s, Options{})
	detailed := ToDOT(s, Options{Detailed: true})

	if strings.Contains(plain, "column:") {
		t.Error("plain output leaked detailed labels")
	}
	if !strings.Contains(detailed, "column:") {
		t.Error("detailed output missing column labels")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 100.50 60.25" xmlns="http://www.w3.org/2000/svg">rest</svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.50 60.25"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="101" height="60"`) && !strings.Contains(out, `width="100" height="60"`) {
		t.Errorf("dimensions missing: %s", out)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	s := branchedState(t)
	if ToDOT(s, Options{}) != ToDOT(s, Options{}) {
		t.Error("identical states produced different DOT output")
	}
}
