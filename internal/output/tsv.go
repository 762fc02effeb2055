package output

import (
	"fmt"
	"strings"

	"codescope/internal/graph"
	"codescope/internal/results"
)

type TSVGenerator struct {
	graph    *graph.Graph
	registry *results.Registry
}

func NewTSVGenerator(g *graph.Graph, reg *results.Registry) *TSVGenerator {
	return &TSVGenerator{graph: g, registry: reg}
}

// Generate emits one row per edge, sorted by (From, To).
func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("From\tTo\tKind\tLanguage\n")
	for _, edge := range t.graph.Edges() {
		lang := ""
		if rec, ok := t.registry.Get(edge.From); ok {
			switch r := rec.(type) {
			case *results.FileResult:
				lang = r.Language
			case *results.EntityResult:
				lang = r.Language
			}
		}
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\t%s\n", edge.From, edge.To, edge.Kind, lang))
	}

	return buf.String(), nil
}

// GenerateEntities emits one row per extracted entity, in registration order.
func (t *TSVGenerator) GenerateEntities() (string, error) {
	var buf strings.Builder

	buf.WriteString("Entity\tUnique\tLanguage\tModule\tFile\tInherits\n")
	for _, e := range t.registry.Entities() {
		file := ""
		if parent := e.ParentFile(); parent != nil {
			file = parent.RelativePath
		}
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\n",
			e.EntityName, e.Unique, e.Language, e.ModuleName, file, strings.Join(e.Inherits, ",")))
	}

	return buf.String(), nil
}
