// Package morphism diffs two patch snapshots into a classified, scored
// transition, and supports equivalence testing, neighborhood computation,
// path finding, and chaining over the resulting morphism graph.
package morphism

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/vkm/internal/config"
	"github.com/ppiankov/vkm/internal/model"
)

// MotiveCounts carries the motive counts of the two endpoint patches, when
// the caller has computed them. Without counts the motive component of the
// information gain is zero.
type MotiveCounts struct {
	From int
	To   int
}

// Options parameterizes a diff. A nil Weights falls back to the standard
// gain weights; an explicit value, including all zeroes, is honored as
// given.
type Options struct {
	Author       string
	Reason       string
	Weights      *config.GainWeights
	MotiveCounts *MotiveCounts
}

// Compute diffs two patches into a morphism. Fact diffing is by ID with an
// update-confidence operation for common facts whose confidence changed; no
// other fact field is diffed, since facts are otherwise immutable. Edge
// diffing is purely structural by ID: edges are replaced, never patched in
// place, so there is no update-edge operation.
func Compute(from, to model.Patch, opts Options) model.Morphism {
	weights := config.DefaultGainWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}

	fromFacts := from.FactIDs()
	toFacts := to.FactIDs()

	var removed, added, common []string
	for id := range fromFacts {
		if toFacts[id] {
			common = append(common, id)
		} else {
			removed = append(removed, id)
		}
	}
	for id := range toFacts {
		if !fromFacts[id] {
			added = append(added, id)
		}
	}
	sort.Strings(removed)
	sort.Strings(added)
	sort.Strings(common)

	var ops []model.Operation
	for _, id := range removed {
		ops = append(ops, model.Operation{Kind: model.OpRemoveFact, FactID: id})
	}
	for _, id := range added {
		ops = append(ops, model.Operation{Kind: model.OpAddFact, FactID: id})
	}
	for _, id := range common {
		oldFact, _ := from.FactByID(id)
		newFact, _ := to.FactByID(id)
		if oldFact.Confidence != newFact.Confidence {
			ops = append(ops, model.Operation{
				Kind:          model.OpUpdateConfidence,
				FactID:        id,
				OldConfidence: oldFact.Confidence,
				NewConfidence: newFact.Confidence,
			})
		}
	}

	fromEdges := make(map[string]bool, len(from.Edges))
	for _, e := range from.Edges {
		fromEdges[e.ID] = true
	}
	toEdges := make(map[string]bool, len(to.Edges))
	for _, e := range to.Edges {
		toEdges[e.ID] = true
	}

	var removedEdges, addedEdges []string
	for id := range fromEdges {
		if !toEdges[id] {
			removedEdges = append(removedEdges, id)
		}
	}
	for id := range toEdges {
		if !fromEdges[id] {
			addedEdges = append(addedEdges, id)
		}
	}
	sort.Strings(removedEdges)
	sort.Strings(addedEdges)

	for _, id := range removedEdges {
		ops = append(ops, model.Operation{Kind: model.OpRemoveEdge, EdgeID: id})
	}
	for _, id := range addedEdges {
		ops = append(ops, model.Operation{Kind: model.OpAddEdge, EdgeID: id})
	}

	delta := model.Delta{
		FactsAdded:   len(added),
		FactsRemoved: len(removed),
		EdgesAdded:   len(addedEdges),
		EdgesRemoved: len(removedEdges),
	}

	return model.Morphism{
		ID:              uuid.NewString(),
		FromPatch:       from.ID,
		ToPatch:         to.ID,
		Type:            classify(ops),
		Timestamp:       time.Now().UTC(),
		Author:          opts.Author,
		Reason:          opts.Reason,
		Operations:      ops,
		Delta:           delta,
		InformationGain: informationGain(from, to, delta, weights, opts.MotiveCounts),
	}
}

// classify applies the fixed-priority transition rules; the first matching
// rule wins. An empty operation list falls through to transition.
func classify(ops []model.Operation) model.MorphismType {
	var hasAdd, hasRemove, hasUpdate, hasEdgeOp bool
	for _, op := range ops {
		switch op.Kind {
		case model.OpAddFact:
			hasAdd = true
		case model.OpRemoveFact:
			hasRemove = true
		case model.OpUpdateConfidence:
			hasUpdate = true
		case model.OpAddEdge, model.OpRemoveEdge:
			hasEdgeOp = true
		}
	}

	switch {
	case hasRemove:
		return model.MorphismRefutation
	case hasAdd && !hasEdgeOp:
		return model.MorphismAdditive
	case hasUpdate && !hasAdd && !hasEdgeOp:
		return model.MorphismRefinement
	case hasEdgeOp && !hasAdd:
		return model.MorphismReorganization
	default:
		return model.MorphismTransition
	}
}
