package model

import (
	"testing"
)

func validPatch() Patch {
	return Patch{
		ID: "p1",
		Facts: []Fact{
			{ID: "f1", Text: "a", Confidence: 0.5},
			{ID: "f2", Text: "b", Confidence: 0.9},
		},
		Edges: []Edge{
			{ID: "e1", From: "f1", To: "f2", Relation: RelationSupports, Strength: 0.5},
		},
		Embeddings: []Embedding{
			{ID: "em1", ClaimRef: "f1", Model: "m", Vector: []float64{1, 2}},
			{ID: "em2", ClaimRef: "f2", Model: "m", Vector: []float64{3, 4}},
		},
	}
}

func hasViolation(r ValidationReport, code string) bool {
	for _, v := range r.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

func TestValidatePatch_Valid(t *testing.T) {
	r := ValidatePatch(validPatch())
	if !r.Valid {
		t.Errorf("expected valid patch, got violations: %+v", r.Violations)
	}
}

func TestValidatePatch_DuplicateFactID(t *testing.T) {
	p := validPatch()
	p.Facts = append(p.Facts, Fact{ID: "f1", Text: "dup", Confidence: 0.5})

	r := ValidatePatch(p)
	if r.Valid || !hasViolation(r, "duplicate-fact") {
		t.Errorf("expected duplicate-fact violation, got %+v", r.Violations)
	}
}

func TestValidatePatch_DanglingEdge(t *testing.T) {
	p := validPatch()
	p.Edges = append(p.Edges, Edge{ID: "e2", From: "f1", To: "missing", Relation: RelationCauses, Strength: 0.5})

	r := ValidatePatch(p)
	if r.Valid || !hasViolation(r, "dangling-edge") {
		t.Errorf("expected dangling-edge violation, got %+v", r.Violations)
	}
}

func TestValidatePatch_ConfidenceOutOfRange(t *testing.T) {
	p := validPatch()
	p.Facts[0].Confidence = 1.5

	r := ValidatePatch(p)
	if r.Valid || !hasViolation(r, "field") {
		t.Errorf("expected field violation for confidence, got %+v", r.Violations)
	}
}

func TestValidatePatch_MultipleEmbeddingsPerFact(t *testing.T) {
	p := validPatch()
	p.Embeddings = append(p.Embeddings, Embedding{ID: "em3", ClaimRef: "f1", Model: "m", Vector: []float64{5, 6}})

	r := ValidatePatch(p)
	if r.Valid || !hasViolation(r, "multiple-embeddings") {
		t.Errorf("expected multiple-embeddings violation, got %+v", r.Violations)
	}
}

func TestValidatePatch_InconsistentVectorLengths(t *testing.T) {
	p := validPatch()
	p.Embeddings[1].Vector = []float64{1, 2, 3}

	r := ValidatePatch(p)
	if r.Valid || !hasViolation(r, "vector-length") {
		t.Errorf("expected vector-length violation, got %+v", r.Violations)
	}
}

func TestValidatePatch_UnknownRelation(t *testing.T) {
	p := validPatch()
	p.Edges[0].Relation = "befriends"

	r := ValidatePatch(p)
	if r.Valid || !hasViolation(r, "bad-relation") {
		t.Errorf("expected bad-relation violation, got %+v", r.Violations)
	}
}

func TestValidatePatch_ReportsEveryViolation(t *testing.T) {
	p := validPatch()
	p.Facts = append(p.Facts, Fact{ID: "f1", Text: "dup", Confidence: 2.0})
	p.Edges = append(p.Edges, Edge{ID: "e1", From: "nope", To: "f2", Relation: RelationSupports, Strength: 0.1})

	r := ValidatePatch(p)
	if r.Valid {
		t.Fatal("expected invalid patch")
	}
	if len(r.Violations) < 3 {
		t.Errorf("expected all violations reported, got %d: %+v", len(r.Violations), r.Violations)
	}
}
