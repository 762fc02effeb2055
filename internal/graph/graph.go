// Package graph builds the dependency view over a populated result registry:
// one node per record plus one node per referenced name, edges for imports
// and inheritance.
package graph

import (
	"sort"
	"sync"

	"codescope/internal/observability"
	"codescope/internal/results"
)

// Edge kinds.
const (
	KindImport   = "import"
	KindInherits = "inherits"
)

type Edge struct {
	From string
	To   string
	Kind string
}

type Graph struct {
	mu    sync.RWMutex
	nodes map[string]bool
	out   map[string]map[string]string // from -> to -> kind
	in    map[string]map[string]bool
}

func New() *Graph {
	return &Graph{
		nodes: make(map[string]bool),
		out:   make(map[string]map[string]string),
		in:    make(map[string]map[string]bool),
	}
}

// Build derives the graph for one analysis run. Import targets that no
// scanned record declares still become nodes; external dependencies stay
// visible as leaves.
func Build(reg *results.Registry) *Graph {
	g := New()

	for _, file := range reg.Files() {
		from := file.UniqueName()
		g.AddNode(from)
		for _, imp := range file.Imports {
			g.AddEdge(from, imp, KindImport)
		}
	}

	for _, entity := range reg.Entities() {
		from := entity.UniqueName()
		g.AddNode(from)
		for _, parent := range entity.Inherits {
			g.AddEdge(from, parent, KindInherits)
		}
	}

	observability.GraphEdges.Set(float64(g.EdgeCount()))
	return g
}

func (g *Graph) AddNode(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes[name] = true
}

func (g *Graph) AddEdge(from, to, kind string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes[from] = true
	g.nodes[to] = true

	if g.out[from] == nil {
		g.out[from] = make(map[string]string)
	}
	g.out[from][to] = kind

	if g.in[to] == nil {
		g.in[to] = make(map[string]bool)
	}
	g.in[to][from] = true
}

func (g *Graph) HasNode(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes[name]
}

func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	for _, targets := range g.out {
		n += len(targets)
	}
	return n
}

// Nodes returns all node names, sorted.
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Edges returns all edges sorted by (From, To) for stable output.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges := make([]Edge, 0)
	for from, targets := range g.out {
		for to, kind := range targets {
			edges = append(edges, Edge{From: from, To: to, Kind: kind})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From == edges[j].From {
			return edges[i].To < edges[j].To
		}
		return edges[i].From < edges[j].From
	})
	return edges
}

// FanIn counts direct dependents of a node.
func (g *Graph) FanIn(name string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.in[name])
}

// FanOut counts direct dependencies of a node.
func (g *Graph) FanOut(name string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.out[name])
}
