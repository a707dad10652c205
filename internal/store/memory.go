package store

import (
	"fmt"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/vkm/internal/model"
)

// MemoryStore is a non-durable Store for tests and one-shot runs. Records
// live in a go-cache instance without expiry; per-source patch order is
// tracked separately since the cache has no secondary indexes.
type MemoryStore struct {
	cache *gocache.Cache

	mu       sync.Mutex
	bySource map[string][]string
	byPatch  map[string][]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache:    gocache.New(gocache.NoExpiration, 0),
		bySource: make(map[string][]string),
		byPatch:  make(map[string][]string),
	}
}

// StorePatch stores a patch, appending it to its source's history unless the
// same patch ID was stored before.
func (s *MemoryStore) StorePatch(p model.Patch) (string, error) {
	if p.ID == "" {
		return "", fmt.Errorf("patch ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, seen := s.cache.Get("patch:" + p.ID)
	s.cache.Set("patch:"+p.ID, p, gocache.NoExpiration)
	if !seen {
		s.bySource[p.SourceID] = append(s.bySource[p.SourceID], p.ID)
	}
	return p.ID, nil
}

// GetPatch retrieves a patch by ID.
func (s *MemoryStore) GetPatch(id string) (model.Patch, error) {
	v, ok := s.cache.Get("patch:" + id)
	if !ok {
		return model.Patch{}, fmt.Errorf("patch %s: %w", id, ErrNotFound)
	}
	return v.(model.Patch), nil
}

// StoreMorphism stores a morphism and indexes it by both endpoints.
func (s *MemoryStore) StoreMorphism(m model.Morphism) error {
	if m.ID == "" {
		return fmt.Errorf("morphism ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, seen := s.cache.Get("morphism:" + m.ID)
	s.cache.Set("morphism:"+m.ID, m, gocache.NoExpiration)
	if !seen {
		s.byPatch[m.FromPatch] = append(s.byPatch[m.FromPatch], m.ID)
		if m.ToPatch != m.FromPatch {
			s.byPatch[m.ToPatch] = append(s.byPatch[m.ToPatch], m.ID)
		}
	}
	return nil
}

// GetMorphism retrieves a morphism by ID.
func (s *MemoryStore) GetMorphism(id string) (model.Morphism, error) {
	v, ok := s.cache.Get("morphism:" + id)
	if !ok {
		return model.Morphism{}, fmt.Errorf("morphism %s: %w", id, ErrNotFound)
	}
	return v.(model.Morphism), nil
}

// PatchesBySource lists patch IDs for a source in insertion order.
func (s *MemoryStore) PatchesBySource(sourceID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bySource[sourceID]...), nil
}

// LatestForSource returns the most recently stored patch ID for a source.
func (s *MemoryStore) LatestForSource(sourceID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.bySource[sourceID]
	if len(ids) == 0 {
		return "", fmt.Errorf("source %s: %w", sourceID, ErrNotFound)
	}
	return ids[len(ids)-1], nil
}

// MorphismsForPatch lists morphisms touching a patch in insertion order.
func (s *MemoryStore) MorphismsForPatch(patchID string) ([]model.Morphism, error) {
	s.mu.Lock()
	ids := append([]string(nil), s.byPatch[patchID]...)
	s.mu.Unlock()

	out := make([]model.Morphism, 0, len(ids))
	for _, id := range ids {
		m, err := s.GetMorphism(id)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
