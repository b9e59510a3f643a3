// Package export renders graphs and settled layouts to static formats:
// Graphviz DOT, SVG, and a self-contained interactive HTML viewer.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"
)

// ToDOT converts a graph to Graphviz DOT. When a layout is supplied, node
// positions are pinned so the neato engine reproduces the settled
// arrangement instead of computing its own.
func ToDOT(g graph.Graph, l *graph.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=12];\n")
	buf.WriteString("  edge [color=\"#999999\"];\n")
	buf.WriteString("\n")

	var pos map[string]graph.Position
	if l != nil {
		pos = l.PositionMap()
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		attrs := fmtNodeAttrs(n, pos)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, link := range g.Links {
		if link.Type != "" {
			fmt.Fprintf(&buf, "  %q -- %q [label=%q, fontsize=10];\n", link.Source, link.Target, link.Type)
		} else {
			fmt.Fprintf(&buf, "  %q -- %q;\n", link.Source, link.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNodeAttrs(n *graph.Node, pos map[string]graph.Position) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", n.DisplayLabel()),
		fmt.Sprintf("fillcolor=%q", n.Color()),
		"fontcolor=white",
		// DOT sizes are in inches; 72 points per inch.
		fmt.Sprintf("width=%.3f", n.Radius()*2/72),
		"fixedsize=true",
	}
	if p, ok := pos[n.ID]; ok {
		// The "!" suffix pins the position for the neato engine.
		attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", p.X, -p.Y))
	}
	return attrs
}
