package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skeinlab/skein/pkg/editor"
)

// Canvas glyphs.
const (
	glyphNode      = '◯'
	glyphPrimary   = '●'
	glyphSecondary = '◉'
	glyphSelected  = '◎'
	glyphPort      = '∘'
	glyphEdge      = '─'
	glyphMid       = '·'
	glyphMarquee   = '░'
)

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	stylePrimary   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleSecondary = lipgloss.NewStyle().Foreground(colorCyan)
	styleSelected  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleNode      = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	stylePort      = lipgloss.NewStyle().Foreground(colorGray)
	styleEdge      = lipgloss.NewStyle().Foreground(colorDim)
	styleMarquee   = lipgloss.NewStyle().Foreground(colorDim)
	styleStatus    = lipgloss.NewStyle().Foreground(colorGray)
)

// cell is one canvas position: a glyph plus its style.
type cell struct {
	r  rune
	st lipgloss.Style
}

func (m Model) View() string {
	canvasH := m.height - 1
	if canvasH < 1 || m.width < 1 {
		return ""
	}

	grid := make([][]cell, canvasH)
	for i := range grid {
		grid[i] = make([]cell, m.width)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' '}
		}
	}
	put := func(col, row int, r rune, st lipgloss.Style) {
		if row < 0 || row >= canvasH || col < 0 || col >= m.width {
			return
		}
		grid[row][col] = cell{r: r, st: st}
	}

	snap := m.ed.Snapshot()

	// Paint back to front: marquee, edges, ports, nodes, cursors.
	if snap.Marquee != nil {
		m.paintMarquee(*snap.Marquee, put)
	}

	for _, e := range snap.Edges {
		m.paintEdge(e, put)
	}

	for _, p := range snap.Ports {
		col, row := m.toScreen(p.Pos)
		put(col, row, glyphPort, stylePort)
	}

	selected := make(map[editor.ID]bool, len(snap.Selected))
	for _, id := range snap.Selected {
		selected[id] = true
	}
	cursors := make(map[editor.ID]bool, len(snap.Cursors))
	primary := make(map[editor.ID]bool, 1)
	for _, c := range snap.Cursors {
		cursors[c.Node] = true
		if c.Primary {
			primary[c.Node] = true
		}
	}

	for _, n := range snap.Nodes {
		col, row := m.toScreen(n.Pos)
		switch {
		case primary[n.ID]:
			put(col, row, glyphPrimary, stylePrimary)
		case cursors[n.ID]:
			put(col, row, glyphSecondary, styleSecondary)
		case selected[n.ID]:
			put(col, row, glyphSelected, styleSelected)
		default:
			put(col, row, glyphNode, styleNode)
		}
		if label := n.Label; label != "" {
			for i, r := range label {
				put(col+2+i, row, r, styleNode)
			}
		}
	}

	var b strings.Builder
	for _, line := range grid {
		for _, c := range line {
			if c.r == ' ' {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c.st.Render(string(c.r)))
		}
		b.WriteByte('\n')
	}

	b.WriteString(styleStatus.Render(m.statusLine(snap)))
	return b.String()
}

// paintEdge draws a straight run between the edge's endpoint cells and
// marks the routed midpoint.
func (m Model) paintEdge(e editor.EdgeView, put func(int, int, rune, lipgloss.Style)) {
	c1, r1 := m.toScreen(e.Src)
	c2, r2 := m.toScreen(e.Dst)

	steps := max(abs(c2-c1), abs(r2-r1))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		col := c1 + int(t*float64(c2-c1))
		row := r1 + int(t*float64(r2-r1))
		put(col, row, glyphEdge, styleEdge)
	}

	mc, mr := m.toScreen(e.Mid)
	put(mc, mr, glyphMid, styleEdge)
}

func (m Model) paintMarquee(rect editor.Rect, put func(int, int, rune, lipgloss.Style)) {
	c1, r1 := m.toScreen(editor.Vec{X: rect.Min.X, Y: rect.Max.Y})
	c2, r2 := m.toScreen(editor.Vec{X: rect.Max.X, Y: rect.Min.Y})
	for row := r1; row <= r2; row++ {
		for col := c1; col <= c2; col++ {
			put(col, row, glyphMarquee, styleMarquee)
		}
	}
}

func (m Model) statusLine(snap editor.Snapshot) string {
	status := fmt.Sprintf(" %d nodes · %d cursors", len(snap.Nodes), len(snap.Cursors))
	if len(snap.Selected) > 0 {
		status += fmt.Sprintf(" · %d selected", len(snap.Selected))
	}
	return status + "  [space insert · b branch · arrows move · q quit]"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
