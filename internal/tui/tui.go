// Package tui implements the interactive terminal front end of the
// editor. It translates bubbletea mouse and key messages into
// controller events and renders snapshots onto a rune canvas.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skeinlab/skein/pkg/editor"
)

// Cell size in world units. A column step of 120 spans ten terminal
// cells, a branch step of 40 spans two rows.
const (
	cellW = 12.0
	cellH = 20.0
)

// Model is the bubbletea model wrapping one editor instance.
type Model struct {
	ed  *editor.Editor
	ctl *editor.Controller

	width  int
	height int

	// origin is the world position of the canvas center, panned with
	// the view as the document grows.
	origin editor.Vec
}

// New creates a model around the given editor.
func New(ed *editor.Editor) Model {
	return Model{
		ed:     ed,
		ctl:    ed.Controller(),
		width:  80,
		height: 24,
	}
}

// Editor exposes the wrapped instance, used by the serve command to
// publish snapshots of the same document being edited.
func (m Model) Editor() *editor.Editor { return m.ed }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.ctl.KeyDown(m.ed, editor.KeySpace)
		case "b":
			// Terminals cannot report shift+space reliably, so the
			// branch command gets its own key.
			m.ctl.KeyDown(m.ed, editor.KeyShiftSpace)
		case "left", "h":
			m.ctl.KeyDown(m.ed, editor.KeyLeft)
		case "right", "l":
			m.ctl.KeyDown(m.ed, editor.KeyRight)
		case "up", "k":
			m.ctl.KeyDown(m.ed, editor.KeyUp)
		case "down", "j":
			m.ctl.KeyDown(m.ed, editor.KeyDown)
		}

	case tea.MouseMsg:
		pos := m.toWorld(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.ctl.PointerDown(m.ed, pos, editor.Modifiers{Add: msg.Shift})
			}
		case tea.MouseActionMotion:
			m.ctl.PointerMove(m.ed, pos)
		case tea.MouseActionRelease:
			m.ctl.PointerUp(m.ed, pos)
		}
	}
	return m, nil
}

// toWorld converts a terminal cell to world coordinates. Terminal rows
// grow downward while world Y grows upward, so the row axis flips.
func (m Model) toWorld(col, row int) editor.Vec {
	cx := float64(m.width) / 2
	cy := float64(m.height) / 2
	return editor.Vec{
		X: m.origin.X + (float64(col)-cx)*cellW,
		Y: m.origin.Y - (float64(row)-cy)*cellH,
	}
}

// toScreen is the inverse of toWorld, truncating to the enclosing cell.
func (m Model) toScreen(p editor.Vec) (int, int) {
	cx := float64(m.width) / 2
	cy := float64(m.height) / 2
	col := int(cx + (p.X-m.origin.X)/cellW)
	row := int(cy - (p.Y-m.origin.Y)/cellH)
	return col, row
}
