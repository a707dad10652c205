package model

import (
	"time"

	"github.com/google/uuid"
)

// Patch is an immutable snapshot of facts, edges, and embeddings at a point
// in time. Transformations never mutate a patch; each returns a new value
// with a fresh ID. Fact IDs are globally stable across patches, which is
// what makes diffing two patches meaningful.
type Patch struct {
	ID         string            `json:"id" validate:"required"`
	Timestamp  time.Time         `json:"timestamp"`
	Source     string            `json:"source"`
	SourceID   string            `json:"source_id,omitempty"`
	Facts      []Fact            `json:"facts"`
	Edges      []Edge            `json:"edges"`
	Embeddings []Embedding       `json:"embeddings"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// NewPatch creates an empty patch for a source.
func NewPatch(source, sourceID string, ts time.Time) Patch {
	return Patch{
		ID:        uuid.NewString(),
		Timestamp: ts,
		Source:    source,
		SourceID:  sourceID,
	}
}

// clone copies the patch with fresh backing slices so transforms cannot
// alias the original.
func (p Patch) clone() Patch {
	out := p
	out.Facts = append([]Fact(nil), p.Facts...)
	out.Edges = append([]Edge(nil), p.Edges...)
	out.Embeddings = append([]Embedding(nil), p.Embeddings...)
	if p.Metadata != nil {
		out.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// derive clones the patch and stamps a new identity, so every transform
// yields a distinct snapshot.
func (p Patch) derive() Patch {
	out := p.clone()
	out.ID = uuid.NewString()
	return out
}

// WithFact returns a new patch containing f. An existing fact with the same
// ID is replaced; otherwise f is appended.
func (p Patch) WithFact(f Fact) Patch {
	out := p.derive()
	for i := range out.Facts {
		if out.Facts[i].ID == f.ID {
			out.Facts[i] = f
			return out
		}
	}
	out.Facts = append(out.Facts, f)
	return out
}

// WithoutFact returns a new patch with the fact removed, along with its
// embedding and any edges touching it, keeping the patch structurally valid.
func (p Patch) WithoutFact(id string) Patch {
	out := p.derive()

	facts := out.Facts[:0]
	for _, f := range out.Facts {
		if f.ID != id {
			facts = append(facts, f)
		}
	}
	out.Facts = facts

	edges := out.Edges[:0]
	for _, e := range out.Edges {
		if e.From != id && e.To != id {
			edges = append(edges, e)
		}
	}
	out.Edges = edges

	embeddings := out.Embeddings[:0]
	for _, em := range out.Embeddings {
		if em.ClaimRef != id {
			embeddings = append(embeddings, em)
		}
	}
	out.Embeddings = embeddings

	return out
}

// WithConfidence returns a new patch where the fact with the given ID carries
// the new confidence. Unknown IDs return the patch unchanged apart from its
// new identity.
func (p Patch) WithConfidence(id string, confidence float64) Patch {
	out := p.derive()
	for i := range out.Facts {
		if out.Facts[i].ID == id {
			out.Facts[i].Confidence = confidence
			break
		}
	}
	return out
}

// WithEdge returns a new patch containing e, replacing any edge with the
// same ID.
func (p Patch) WithEdge(e Edge) Patch {
	out := p.derive()
	for i := range out.Edges {
		if out.Edges[i].ID == e.ID {
			out.Edges[i] = e
			return out
		}
	}
	out.Edges = append(out.Edges, e)
	return out
}

// WithoutEdge returns a new patch with the edge removed.
func (p Patch) WithoutEdge(id string) Patch {
	out := p.derive()
	edges := out.Edges[:0]
	for _, e := range out.Edges {
		if e.ID != id {
			edges = append(edges, e)
		}
	}
	out.Edges = edges
	return out
}

// WithEmbedding returns a new patch containing em, replacing any existing
// embedding for the same fact.
func (p Patch) WithEmbedding(em Embedding) Patch {
	out := p.derive()
	for i := range out.Embeddings {
		if out.Embeddings[i].ClaimRef == em.ClaimRef {
			out.Embeddings[i] = em
			return out
		}
	}
	out.Embeddings = append(out.Embeddings, em)
	return out
}

// AtLOD returns a new patch containing only facts at or above the requested
// level of detail (level 0 keeps everything). Edges and embeddings referring
// to dropped facts are dropped with them.
func (p Patch) AtLOD(level int) Patch {
	out := p.derive()

	keep := make(map[string]bool, len(out.Facts))
	facts := out.Facts[:0]
	for _, f := range out.Facts {
		if f.LOD >= level {
			facts = append(facts, f)
			keep[f.ID] = true
		}
	}
	out.Facts = facts

	edges := out.Edges[:0]
	for _, e := range out.Edges {
		if keep[e.From] && keep[e.To] {
			edges = append(edges, e)
		}
	}
	out.Edges = edges

	embeddings := out.Embeddings[:0]
	for _, em := range out.Embeddings {
		if keep[em.ClaimRef] {
			embeddings = append(embeddings, em)
		}
	}
	out.Embeddings = embeddings

	return out
}

// FactByID looks up a fact by ID.
func (p Patch) FactByID(id string) (Fact, bool) {
	for _, f := range p.Facts {
		if f.ID == id {
			return f, true
		}
	}
	return Fact{}, false
}

// FactIDs returns the set of fact IDs in the patch.
func (p Patch) FactIDs() map[string]bool {
	ids := make(map[string]bool, len(p.Facts))
	for _, f := range p.Facts {
		ids[f.ID] = true
	}
	return ids
}

// FactsByTopic returns all facts with the given topic.
func (p Patch) FactsByTopic(topic string) []Fact {
	var out []Fact
	for _, f := range p.Facts {
		if f.Topic == topic {
			out = append(out, f)
		}
	}
	return out
}

// FactsAboveConfidence returns all facts with confidence >= min.
func (p Patch) FactsAboveConfidence(min float64) []Fact {
	var out []Fact
	for _, f := range p.Facts {
		if f.Confidence >= min {
			out = append(out, f)
		}
	}
	return out
}

// RelatedFacts returns the facts connected to the given fact by an edge, in
// either direction.
func (p Patch) RelatedFacts(id string) []Fact {
	var out []Fact
	seen := make(map[string]bool)
	for _, e := range p.Edges {
		var other string
		switch id {
		case e.From:
			other = e.To
		case e.To:
			other = e.From
		default:
			continue
		}
		if seen[other] {
			continue
		}
		seen[other] = true
		if f, ok := p.FactByID(other); ok {
			out = append(out, f)
		}
	}
	return out
}

// EmbeddingForFact returns the embedding for a fact, if present.
func (p Patch) EmbeddingForFact(id string) (Embedding, bool) {
	for _, em := range p.Embeddings {
		if em.ClaimRef == id {
			return em, true
		}
	}
	return Embedding{}, false
}

// TopicHistogram counts facts per topic.
func (p Patch) TopicHistogram() map[string]int {
	hist := make(map[string]int)
	for _, f := range p.Facts {
		hist[f.Topic]++
	}
	return hist
}

// AverageConfidence returns the mean fact confidence, 0 for an empty patch.
func (p Patch) AverageConfidence() float64 {
	if len(p.Facts) == 0 {
		return 0
	}
	var sum float64
	for _, f := range p.Facts {
		sum += f.Confidence
	}
	return sum / float64(len(p.Facts))
}

// PatchStats is a structural summary of a patch.
type PatchStats struct {
	FactCount         int            `json:"fact_count"`
	EdgeCount         int            `json:"edge_count"`
	EmbeddingCount    int            `json:"embedding_count"`
	AverageConfidence float64        `json:"average_confidence"`
	Topics            map[string]int `json:"topics"`
}

// Stats summarizes the patch.
func (p Patch) Stats() PatchStats {
	return PatchStats{
		FactCount:         len(p.Facts),
		EdgeCount:         len(p.Edges),
		EmbeddingCount:    len(p.Embeddings),
		AverageConfidence: p.AverageConfidence(),
		Topics:            p.TopicHistogram(),
	}
}
