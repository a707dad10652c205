// Package store persists patches and morphisms. The engine only needs this
// contract; the storage technology behind it is interchangeable.
package store

import (
	"errors"

	"github.com/ppiankov/vkm/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence collaborator contract. Each record persists or
// fails atomically: a patch's facts, edges, and embeddings are stored as
// one unit.
type Store interface {
	// StorePatch persists a patch and returns its ID.
	StorePatch(p model.Patch) (string, error)

	// GetPatch retrieves a patch by ID.
	GetPatch(id string) (model.Patch, error)

	// StoreMorphism persists a morphism.
	StoreMorphism(m model.Morphism) error

	// GetMorphism retrieves a morphism by ID.
	GetMorphism(id string) (model.Morphism, error)

	// PatchesBySource lists patch IDs for a source, oldest first.
	PatchesBySource(sourceID string) ([]string, error)

	// LatestForSource returns the most recent patch ID for a source.
	LatestForSource(sourceID string) (string, error)

	// MorphismsForPatch lists morphisms that start or end at a patch.
	MorphismsForPatch(patchID string) ([]model.Morphism, error)

	// Close releases the underlying resources.
	Close() error
}
