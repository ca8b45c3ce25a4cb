// Package cycles builds the strong reference edges of a model graph,
// enumerates the reference cycles they form, and classifies each cycle
// against the whitelist registry.
package cycles

import (
	"sort"

	"github.com/trujunzhang/cyclefinder/internal/graph"
	"github.com/trujunzhang/cyclefinder/internal/types"
)

// BuildEdges returns every strong reference edge of the graph in a
// deterministic order. A non-weak, non-static field whose declared type
// resolves to a model type contributes a field edge; a type whose outer
// declaration names a model type contributes an outer edge. References to
// types outside the model contribute nothing.
func BuildEdges(g *graph.Graph) []types.CycleEdge {
	var edges []types.CycleEdge
	for _, t := range g.Types() {
		from := t.CanonicalName()
		for _, f := range t.Fields {
			if f.Weak || f.Static {
				continue
			}
			target := graph.CanonicalTypeRef(f.TypeName)
			if _, ok := g.TypeByName(target); !ok {
				continue
			}
			edges = append(edges, types.CycleEdge{
				From:      from,
				To:        target,
				Field:     t.FieldName(f),
				DeclRange: f.DeclRange,
			})
		}
		if t.Outer != "" {
			if _, ok := g.TypeByName(t.Outer); ok {
				edges = append(edges, types.CycleEdge{
					From:      from,
					To:        t.Outer,
					Outer:     true,
					DeclRange: t.DeclRange,
				})
			}
		}
	}
	sort.SliceStable(edges, func(i, j int) bool { return edgeLess(edges[i], edges[j]) })
	return edges
}

// edgeLess orders edges by origin and target, field edges before the
// outer edge between the same pair
func edgeLess(a, b types.CycleEdge) bool {
	if a.From != b.From {
		return a.From < b.From
	}
	if a.To != b.To {
		return a.To < b.To
	}
	if a.Outer != b.Outer {
		return !a.Outer
	}
	return a.Field < b.Field
}
