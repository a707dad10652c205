package store

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ppiankov/vkm/internal/model"
)

// patchRecord wraps a patch with indexed lookup fields.
type patchRecord struct {
	ID        string `badgerhold:"key"`
	SourceID  string `badgerholdIndex:"SourceID"`
	Timestamp time.Time
	Patch     model.Patch
}

// morphismRecord wraps a morphism with indexed endpoint fields.
type morphismRecord struct {
	ID        string `badgerhold:"key"`
	FromPatch string `badgerholdIndex:"FromPatch"`
	ToPatch   string `badgerholdIndex:"ToPatch"`
	Morphism  model.Morphism
}

// BadgerStore is the durable Store implementation on badgerhold.
type BadgerStore struct {
	db     *badgerhold.Store
	logger arbor.ILogger
}

// OpenBadger opens (or creates) a badger-backed store at the given path.
func OpenBadger(path string, logger arbor.ILogger) (*BadgerStore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // arbor handles logging

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Badger store opened")

	return &BadgerStore{db: db, logger: logger}, nil
}

// StorePatch persists a patch as a single record.
func (s *BadgerStore) StorePatch(p model.Patch) (string, error) {
	if p.ID == "" {
		return "", fmt.Errorf("patch ID is required")
	}

	rec := patchRecord{
		ID:        p.ID,
		SourceID:  p.SourceID,
		Timestamp: p.Timestamp,
		Patch:     p,
	}
	if err := s.db.Upsert(p.ID, &rec); err != nil {
		return "", fmt.Errorf("store patch: %w", err)
	}

	s.logger.Debug().Str("patch", p.ID).Str("source", p.SourceID).Msg("Patch stored")
	return p.ID, nil
}

// GetPatch retrieves a patch by ID.
func (s *BadgerStore) GetPatch(id string) (model.Patch, error) {
	var rec patchRecord
	if err := s.db.Get(id, &rec); err != nil {
		if err == badgerhold.ErrNotFound {
			return model.Patch{}, fmt.Errorf("patch %s: %w", id, ErrNotFound)
		}
		return model.Patch{}, fmt.Errorf("get patch: %w", err)
	}
	return rec.Patch, nil
}

// StoreMorphism persists a morphism as a single record.
func (s *BadgerStore) StoreMorphism(m model.Morphism) error {
	if m.ID == "" {
		return fmt.Errorf("morphism ID is required")
	}

	rec := morphismRecord{
		ID:        m.ID,
		FromPatch: m.FromPatch,
		ToPatch:   m.ToPatch,
		Morphism:  m,
	}
	if err := s.db.Upsert(m.ID, &rec); err != nil {
		return fmt.Errorf("store morphism: %w", err)
	}
	return nil
}

// GetMorphism retrieves a morphism by ID.
func (s *BadgerStore) GetMorphism(id string) (model.Morphism, error) {
	var rec morphismRecord
	if err := s.db.Get(id, &rec); err != nil {
		if err == badgerhold.ErrNotFound {
			return model.Morphism{}, fmt.Errorf("morphism %s: %w", id, ErrNotFound)
		}
		return model.Morphism{}, fmt.Errorf("get morphism: %w", err)
	}
	return rec.Morphism, nil
}

// PatchesBySource lists patch IDs for a source, oldest first.
func (s *BadgerStore) PatchesBySource(sourceID string) ([]string, error) {
	var recs []patchRecord
	if err := s.db.Find(&recs, badgerhold.Where("SourceID").Eq(sourceID).Index("SourceID")); err != nil {
		return nil, fmt.Errorf("find patches: %w", err)
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Timestamp.Before(recs[j].Timestamp)
	})

	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	return ids, nil
}

// LatestForSource returns the most recent patch ID for a source.
func (s *BadgerStore) LatestForSource(sourceID string) (string, error) {
	ids, err := s.PatchesBySource(sourceID)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("source %s: %w", sourceID, ErrNotFound)
	}
	return ids[len(ids)-1], nil
}

// MorphismsForPatch lists morphisms that start or end at a patch.
func (s *BadgerStore) MorphismsForPatch(patchID string) ([]model.Morphism, error) {
	var recs []morphismRecord
	query := badgerhold.Where("FromPatch").Eq(patchID).Or(badgerhold.Where("ToPatch").Eq(patchID))
	if err := s.db.Find(&recs, query); err != nil {
		return nil, fmt.Errorf("find morphisms: %w", err)
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })

	out := make([]model.Morphism, len(recs))
	for i, r := range recs {
		out[i] = r.Morphism
	}
	return out, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
