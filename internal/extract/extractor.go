// Package extract turns raw source text into confidence-scored fact
// triples. Extraction happens strictly before data enters the core engine;
// the engine itself never performs I/O.
package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/vkm/internal/config"
	"github.com/ppiankov/vkm/internal/model"
)

const (
	// DefaultConfidence substitutes a missing or out-of-range confidence.
	DefaultConfidence = 0.5
	// DefaultTopic substitutes a missing topic tag.
	DefaultTopic = "general"
)

// RawFact is the triple an extraction collaborator returns. Sparse values
// are tolerated and normalized, never rejected.
type RawFact struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Topic      string  `json:"topic"`
}

// Extractor is the fact-extraction collaborator boundary.
type Extractor interface {
	// Name returns the extractor name.
	Name() string

	// ExtractFacts extracts claim/confidence/topic triples from raw text.
	ExtractFacts(ctx context.Context, text string) ([]RawFact, error)
}

// NewExtractor creates an extractor based on configuration.
func NewExtractor(cfg config.ExtractConfig) (Extractor, error) {
	switch strings.ToLower(cfg.Provider) {
	case "heuristic", "":
		return NewHeuristicExtractor(), nil

	case "anthropic", "claude":
		return NewClaudeExtractor(cfg)

	default:
		return nil, fmt.Errorf("unknown extraction provider: %s (supported: heuristic, anthropic)", cfg.Provider)
	}
}

// Normalize substitutes documented defaults for sparse collaborator output:
// confidence outside [0,1] becomes 0.5, an empty topic becomes "general".
// Empty texts are dropped.
func Normalize(raw []RawFact) []RawFact {
	out := make([]RawFact, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		if r.Confidence < 0 || r.Confidence > 1 {
			r.Confidence = DefaultConfidence
		}
		if r.Topic == "" {
			r.Topic = DefaultTopic
		}
		out = append(out, r)
	}
	return out
}

// factNamespace scopes deterministic fact IDs.
var factNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("vkm.fact"))

// FactID derives a stable fact ID from the source identity and claim text.
// Re-extracting the same claim from the same source always yields the same
// ID, which is what lets successive snapshots diff fact against fact
// instead of replacing the whole set.
func FactID(sourceID, text string) string {
	return uuid.NewSHA1(factNamespace, []byte(sourceID+"\x00"+text)).String()
}

// BuildPatch assembles normalized raw facts into a new patch for a source.
// Fact IDs are content-derived, so a claim repeated within one extraction
// collapses to a single fact; the last occurrence wins.
func BuildPatch(source, sourceID string, raw []RawFact, now time.Time) model.Patch {
	p := model.NewPatch(source, sourceID, now)
	index := make(map[string]int)
	for _, r := range Normalize(raw) {
		f := model.Fact{
			ID:            FactID(sourceID, r.Text),
			Text:          r.Text,
			Confidence:    r.Confidence,
			Topic:         r.Topic,
			ValidFrom:     now,
			ExtractedFrom: sourceID,
		}
		if i, ok := index[f.ID]; ok {
			p.Facts[i] = f
			continue
		}
		index[f.ID] = len(p.Facts)
		p.Facts = append(p.Facts, f)
	}
	return p
}
