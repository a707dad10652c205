package model

import "time"

// MorphismType classifies the transition between two patches.
type MorphismType string

const (
	MorphismAdditive       MorphismType = "additive"
	MorphismRefinement     MorphismType = "refinement"
	MorphismReorganization MorphismType = "reorganization"
	MorphismRefutation     MorphismType = "refutation"
	MorphismTransition     MorphismType = "transition"
	MorphismComposite      MorphismType = "composite"
)

// OpKind identifies an atomic morphism operation.
type OpKind string

const (
	OpAddFact          OpKind = "add-fact"
	OpRemoveFact       OpKind = "remove-fact"
	OpUpdateConfidence OpKind = "update-confidence"
	OpAddEdge          OpKind = "add-edge"
	OpRemoveEdge       OpKind = "remove-edge"
)

// Operation is one atomic step of a morphism. FactID is set for fact
// operations, EdgeID for edge operations, and the confidence pair only for
// update-confidence.
type Operation struct {
	Kind          OpKind  `json:"kind"`
	FactID        string  `json:"fact_id,omitempty"`
	EdgeID        string  `json:"edge_id,omitempty"`
	OldConfidence float64 `json:"old_confidence,omitempty"`
	NewConfidence float64 `json:"new_confidence,omitempty"`
}

// Delta counts the structural changes a morphism makes.
type Delta struct {
	FactsAdded   int `json:"facts_added"`
	FactsRemoved int `json:"facts_removed"`
	EdgesAdded   int `json:"edges_added"`
	EdgesRemoved int `json:"edges_removed"`
}

// Add returns the component-wise sum of two deltas.
func (d Delta) Add(o Delta) Delta {
	return Delta{
		FactsAdded:   d.FactsAdded + o.FactsAdded,
		FactsRemoved: d.FactsRemoved + o.FactsRemoved,
		EdgesAdded:   d.EdgesAdded + o.EdgesAdded,
		EdgesRemoved: d.EdgesRemoved + o.EdgesRemoved,
	}
}

// Morphism is the computed diff between two patches: an ordered operation
// list, a classification, and an information-gain score. Morphisms are
// created once, by diffing or chaining, and never mutated.
type Morphism struct {
	ID        string       `json:"id"`
	FromPatch string       `json:"from_patch"`
	ToPatch   string       `json:"to_patch"`
	Type      MorphismType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Author    string       `json:"author,omitempty"`
	Reason    string       `json:"reason,omitempty"`

	Operations      []Operation `json:"operations"`
	Delta           Delta       `json:"delta"`
	InformationGain float64     `json:"information_gain"`

	// Chain holds the component morphisms of a composite, in order,
	// for audit. Present only when Type is composite.
	Chain []Morphism `json:"chain,omitempty"`
}

// Motive is a discovered cluster of semantically similar facts, summarized
// by a centroid and concept words. Motives are derived values: they are
// recomputed whenever the source patch's embedding set changes, never
// treated as ground truth.
type Motive struct {
	ID             string    `json:"id"`
	ConceptWords   []string  `json:"concept_words"`
	Centroid       []float64 `json:"centroid"`
	Confidence     float64   `json:"confidence"`
	ClusterSize    int       `json:"cluster_size"`
	MemberClaimIDs []string  `json:"member_claim_ids"`
}
