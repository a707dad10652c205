package model

import "time"

// Fact represents a single confidence-scored assertion extracted from a
// source. Facts are immutable: a confidence change produces a replacement
// Fact value with the same ID inside a new Patch.
type Fact struct {
	ID         string    `json:"id" validate:"required"`
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence" validate:"gte=0,lte=1"`
	Topic      string    `json:"topic,omitempty"`
	ValidFrom  time.Time `json:"valid_from"`

	// ExtractedFrom locates the source document, if known.
	ExtractedFrom string `json:"extracted_from,omitempty"`
	// TimestampInSource is the offset within the source, in seconds.
	TimestampInSource float64 `json:"timestamp_in_source,omitempty"`
	// Revises back-references a prior fact this one supersedes.
	Revises string   `json:"revises,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	// LOD is the level of detail, 0 (most detailed) through 3.
	LOD int `json:"lod" validate:"gte=0,lte=3"`
}

// Relation classifies the link between two facts.
type Relation string

const (
	RelationSupports    Relation = "supports"
	RelationContradicts Relation = "contradicts"
	RelationRevises     Relation = "revises"
	RelationRefines     Relation = "refines"
	RelationGeneralizes Relation = "generalizes"
	RelationSpecializes Relation = "specializes"
	RelationCauses      Relation = "causes"
	RelationCorrelates  Relation = "correlates"
)

// Valid reports whether r is one of the known relation kinds.
func (r Relation) Valid() bool {
	switch r {
	case RelationSupports, RelationContradicts, RelationRevises,
		RelationRefines, RelationGeneralizes, RelationSpecializes,
		RelationCauses, RelationCorrelates:
		return true
	}
	return false
}

// Edge is a typed, weighted relationship between two facts in the same patch.
type Edge struct {
	ID       string   `json:"id" validate:"required"`
	From     string   `json:"from" validate:"required"`
	To       string   `json:"to" validate:"required"`
	Relation Relation `json:"relation"`
	Strength float64  `json:"strength" validate:"gte=0,lte=1"`
}

// Embedding is a fixed-length vector for one fact's text under a named model.
type Embedding struct {
	ID       string    `json:"id" validate:"required"`
	ClaimRef string    `json:"claim_ref" validate:"required"`
	Model    string    `json:"model"`
	Vector   []float64 `json:"vector"`
}
