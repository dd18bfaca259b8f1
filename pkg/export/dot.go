package export

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/skeinlab/skein/pkg/editor"
	"github.com/skeinlab/skein/pkg/errors"
)

// Options configures document export.
type Options struct {
	// Detailed includes column numbers in node labels.
	// When false, only the node label (or id) is shown.
	Detailed bool
}

// ToDOT converts a document to Graphviz DOT format. Columns map to
// Graphviz ranks so the exported diagram reads left to right like the
// editor canvas. The resulting DOT string can be rendered with
// [RenderSVG] or processed by external Graphviz tools.
//
// Cursor nodes are filled to stand out; dangling ports are rendered as
// small open points hanging off their node.
func ToDOT(s editor.State, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph skein {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	cursors := make(map[editor.ID]bool, len(s.Cursors))
	primary := make(map[editor.ID]bool, 1)
	for _, c := range s.Cursors {
		cursors[c.Node] = true
		if c.Primary {
			primary[c.Node] = true
		}
	}

	for _, id := range sortedIDs(s.Nodes) {
		n := s.Nodes[id]
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n, opts.Detailed))}
		switch {
		case primary[id]:
			attrs = append(attrs, "fillcolor=gold")
		case cursors[id]:
			attrs = append(attrs, "fillcolor=lightyellow")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeName(id), strings.Join(attrs, ", "))
	}

	// Pin each column to one rank so the exported diagram preserves
	// the editor's column structure even where edges are sparse.
	byColumn := nodesByColumn(s)
	for _, col := range slices.Sorted(maps.Keys(byColumn)) {
		ids := byColumn[col]
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = strconv.Quote(nodeName(id))
		}
		fmt.Fprintf(&buf, "  { rank=same; %s } // column %d\n", strings.Join(names, "; "), col)
	}

	buf.WriteString("\n")
	for _, id := range sortedIDs(s.Edges) {
		e := s.Edges[id]
		from, okF := s.Ports[e.From]
		to, okT := s.Ports[e.To]
		if !okF || !okT {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeName(from.Node), nodeName(to.Node))
	}

	buf.WriteString("\n")
	for _, portID := range editor.DanglingPorts(s) {
		p := s.Ports[portID]
		stub := fmt.Sprintf("p%d", portID)
		fmt.Fprintf(&buf, "  %q [shape=point, width=0.08, fillcolor=black];\n", stub)
		if p.Side == editor.SideInitial {
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted, arrowhead=none];\n", stub, nodeName(p.Node))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted, arrowhead=none];\n", nodeName(p.Node), stub)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id editor.ID) string {
	return fmt.Sprintf("n%d", id)
}

func nodeLabel(n editor.Node, detailed bool) string {
	label := n.Label
	if label == "" {
		label = nodeName(n.ID)
	}
	if detailed {
		label += fmt.Sprintf("\ncolumn: %d", n.Column)
	}
	return label
}

func nodesByColumn(s editor.State) map[int][]editor.ID {
	out := make(map[int][]editor.ID)
	for _, id := range sortedIDs(s.Nodes) {
		col := s.Nodes[id].Column
		out[col] = append(out[col], id)
	}
	return out
}

func sortedIDs[V any](m map[editor.ID]V) []editor.ID {
	out := make([]editor.ID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render SVG")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root so the viewBox starts at the
// origin, which keeps downstream embedding simple.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
