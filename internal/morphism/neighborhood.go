package morphism

import (
	"reflect"
	"sort"

	"github.com/ppiankov/vkm/internal/model"
)

// Query is a named semantic probe evaluated against a patch when computing
// its neighborhood.
type Query func(model.Patch) interface{}

// Neighborhood characterizes a patch relative to everything connected to
// it: incoming and outgoing morphisms, evaluated semantic queries, and a
// structural summary.
type Neighborhood struct {
	Predecessors []string               `json:"predecessors"`
	Successors   []string               `json:"successors"`
	Queries      map[string]interface{} `json:"queries,omitempty"`
	Summary      model.PatchStats       `json:"summary"`
}

// ComputeNeighborhood evaluates the Yoneda-style neighborhood of a patch
// against a morphism set and optional named queries.
func ComputeNeighborhood(p model.Patch, morphisms []model.Morphism, queries map[string]Query) Neighborhood {
	n := Neighborhood{
		Predecessors: []string{},
		Successors:   []string{},
		Summary:      p.Stats(),
	}

	for _, m := range morphisms {
		if m.ToPatch == p.ID {
			n.Predecessors = append(n.Predecessors, m.FromPatch)
		}
		if m.FromPatch == p.ID {
			n.Successors = append(n.Successors, m.ToPatch)
		}
	}
	sort.Strings(n.Predecessors)
	sort.Strings(n.Successors)

	if len(queries) > 0 {
		n.Queries = make(map[string]interface{}, len(queries))
		for name, q := range queries {
			n.Queries[name] = q(p)
		}
	}

	return n
}

// YonedaEquivalent reports whether two patches have structurally equal
// neighborhoods when computed against the same morphism and query sets.
func YonedaEquivalent(a, b model.Patch, morphisms []model.Morphism, queries map[string]Query) bool {
	na := ComputeNeighborhood(a, morphisms, queries)
	nb := ComputeNeighborhood(b, morphisms, queries)
	return reflect.DeepEqual(na, nb)
}
