package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skeinlab/skein/pkg/editor"
)

func testModel(t *testing.T) Model {
	t.Helper()
	m := New(editor.New())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func press(m Model, x, y int, shift bool) Model {
	next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Shift: shift, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return next.(Model)
}

func release(m Model, x, y int) Model {
	next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease})
	return next.(Model)
}

func key(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func TestScreenWorldRoundTrip(t *testing.T) {
	m := testModel(t)

	for _, p := range []struct{ col, row int }{{40, 12}, {0, 0}, {79, 23}, {10, 20}} {
		world := m.toWorld(p.col, p.row)
		col, row := m.toScreen(world)
		if col != p.col || row != p.row {
			t.Errorf("round trip (%d,%d) -> %v -> (%d,%d)", p.col, p.row, world, col, row)
		}
	}
}

func TestSpaceInsertsNode(t *testing.T) {
	m := testModel(t)

	m = key(m, " ")

	if got := len(m.Editor().State().Nodes); got != 2 {
		t.Fatalf("nodes after space = %d, want 2", got)
	}
}

func TestBranchKey(t *testing.T) {
	m := testModel(t)
	m = key(m, " ")
	m = key(m, "b")

	if got := len(m.Editor().State().Nodes); got != 3 {
		t.Fatalf("nodes after branch = %d, want 3", got)
	}
}

func TestClickSelectsNode(t *testing.T) {
	m := testModel(t)
	m = key(m, " ")
	inserted := m.Editor().State().Cursors[0].Node
	root := editor.ID(0)
	for id := range m.Editor().State().Nodes {
		if id != inserted {
			root = id
		}
	}

	pos := m.Editor().Layout().Nodes[root]
	col, row := m.toScreen(pos)
	m = press(m, col, row, false)
	m = release(m, col, row)

	cursors := m.Editor().State().Cursors
	if len(cursors) != 1 || cursors[0].Node != root {
		t.Fatalf("cursors after click = %+v, want sole cursor on %d", cursors, root)
	}
}

func TestShiftClickAddsCursor(t *testing.T) {
	m := testModel(t)
	m = key(m, " ")
	inserted := m.Editor().State().Cursors[0].Node
	var root editor.ID
	for id := range m.Editor().State().Nodes {
		if id != inserted {
			root = id
		}
	}

	pos := m.Editor().Layout().Nodes[root]
	col, row := m.toScreen(pos)
	m = press(m, col, row, true)
	m = release(m, col, row)

	if got := len(m.Editor().State().Cursors); got != 2 {
		t.Fatalf("cursors after shift-click = %d, want 2", got)
	}
}

func TestViewShowsPrimaryCursor(t *testing.T) {
	m := testModel(t)

	view := m.View()

	if !strings.ContainsRune(view, glyphPrimary) {
		t.Error("view missing primary cursor glyph")
	}
	if !strings.Contains(view, "1 nodes") {
		t.Errorf("status line missing node count:\n%s", view)
	}
}

func TestViewShowsEdges(t *testing.T) {
	m := testModel(t)
	m = key(m, " ")

	view := m.View()

	if !strings.ContainsRune(view, glyphEdge) {
		t.Error("view missing edge glyphs")
	}
	if !strings.ContainsRune(view, glyphPort) {
		t.Error("view missing dangling port glyphs")
	}
}

func TestQuitKeys(t *testing.T) {
	m := testModel(t)
	for _, k := range []string{"q"} {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		if cmd == nil {
			t.Errorf("key %q did not quit", k)
		}
	}
}
