// Package output renders a dependency graph as Graphviz DOT and as TSV.
package output

import (
	"fmt"
	"strings"

	"codescope/internal/graph"
	"codescope/internal/results"
)

type DOTGenerator struct {
	graph    *graph.Graph
	registry *results.Registry
}

func NewDOTGenerator(g *graph.Graph, reg *results.Registry) *DOTGenerator {
	return &DOTGenerator{graph: g, registry: reg}
}

// Generate renders the graph. Scanned records and the external names they
// reference get distinct styling; edges participating in a cycle are
// highlighted.
func (d *DOTGenerator) Generate(cycles [][]string) (string, error) {
	var buf strings.Builder

	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8, penwidth=1.2];\n")
	buf.WriteString("  ranksep=1.5;\n")
	buf.WriteString("  nodesep=0.6;\n")
	buf.WriteString("  splines=polyline;\n")
	buf.WriteString("  overlap=false;\n\n")

	cycleEdges := make(map[string]map[string]bool)
	cycleNodes := make(map[string]bool)
	for _, cycle := range cycles {
		for i := 0; i < len(cycle); i++ {
			from := cycle[i]
			to := cycle[(i+1)%len(cycle)]
			if cycleEdges[from] == nil {
				cycleEdges[from] = make(map[string]bool)
			}
			cycleEdges[from][to] = true
			cycleNodes[from] = true
		}
	}

	buf.WriteString("  subgraph cluster_scanned {\n")
	buf.WriteString("    label=\"Scanned Records\";\n")
	buf.WriteString("    style=filled;\n")
	buf.WriteString("    color=\"whitesmoke\";\n")
	buf.WriteString("    node [fillcolor=\"white\", style=\"rounded,filled\"];\n")

	for _, name := range d.graph.Nodes() {
		rec, ok := d.registry.Get(name)
		if !ok {
			continue
		}
		label := d.nodeLabel(name, rec)
		if cycleNodes[name] {
			buf.WriteString(fmt.Sprintf("    %s [label=\"%s\", fillcolor=\"mistyrose\", color=\"red\", penwidth=2.0];\n", quote(name), label))
		} else {
			buf.WriteString(fmt.Sprintf("    %s [label=\"%s\", color=\"darkslategrey\"];\n", quote(name), label))
		}
	}
	buf.WriteString("  }\n\n")

	buf.WriteString("  // Referenced but not scanned\n")
	buf.WriteString("  node [fillcolor=\"gainsboro\", style=\"rounded,filled\", color=\"grey\"];\n")
	for _, name := range d.graph.Nodes() {
		if _, ok := d.registry.Get(name); ok {
			continue
		}
		buf.WriteString(fmt.Sprintf("  %s [label=\"%s\"];\n", quote(name), escape(name)))
	}
	buf.WriteString("\n")

	for _, edge := range d.graph.Edges() {
		isCycle := cycleEdges[edge.From] != nil && cycleEdges[edge.From][edge.To]
		_, scannedFrom := d.registry.Get(edge.From)
		_, scannedTo := d.registry.Get(edge.To)

		switch {
		case isCycle:
			buf.WriteString(fmt.Sprintf("  %s -> %s [color=\"red\", penwidth=3.0, label=\"CYCLE\"];\n", quote(edge.From), quote(edge.To)))
		case edge.Kind == graph.KindInherits:
			buf.WriteString(fmt.Sprintf("  %s -> %s [color=\"slateblue\", style=dotted, label=\"inherits\"];\n", quote(edge.From), quote(edge.To)))
		case scannedFrom && scannedTo:
			buf.WriteString(fmt.Sprintf("  %s -> %s [color=\"forestgreen\", penwidth=1.8];\n", quote(edge.From), quote(edge.To)))
		default:
			buf.WriteString(fmt.Sprintf("  %s -> %s [color=\"grey\", style=dashed];\n", quote(edge.From), quote(edge.To)))
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func (d *DOTGenerator) nodeLabel(name string, rec results.Record) string {
	switch r := rec.(type) {
	case *results.FileResult:
		return fmt.Sprintf("%s\\n(%s, %d entities)", escape(r.DisplayName), r.Language, len(r.Entities))
	case *results.EntityResult:
		return fmt.Sprintf("%s\\n(%s)", escape(r.EntityName), r.Language)
	}
	return escape(name)
}

func quote(name string) string {
	return `"` + escape(name) + `"`
}

func escape(name string) string {
	return strings.ReplaceAll(name, `"`, `\"`)
}
