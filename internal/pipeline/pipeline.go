// Package pipeline orchestrates the full ingest path: extract facts from
// raw text, embed them, validate the resulting patch, persist it, and diff
// it against the previous snapshot of the same source.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ppiankov/vkm/internal/config"
	"github.com/ppiankov/vkm/internal/embed"
	"github.com/ppiankov/vkm/internal/extract"
	"github.com/ppiankov/vkm/internal/model"
	"github.com/ppiankov/vkm/internal/morphism"
	"github.com/ppiankov/vkm/internal/motive"
	"github.com/ppiankov/vkm/internal/store"
	"github.com/ppiankov/vkm/internal/worker"
)

// Pipeline wires the collaborators around the core engine.
type Pipeline struct {
	extractor extract.Extractor
	embedder  embed.Provider
	limiter   *worker.Limiter
	store     store.Store
	cfg       *config.Config
	logger    arbor.ILogger
}

// New creates a pipeline from configuration. The store is injected so the
// CLI can choose the backend and own its lifecycle.
func New(cfg *config.Config, st store.Store, logger arbor.ILogger) (*Pipeline, error) {
	extractor, err := extract.NewExtractor(cfg.Extract)
	if err != nil {
		return nil, fmt.Errorf("create extractor: %w", err)
	}

	embedder, err := embed.NewProvider(cfg.Embed)
	if err != nil {
		return nil, fmt.Errorf("create embedding provider: %w", err)
	}

	return &Pipeline{
		extractor: extractor,
		embedder:  embedder,
		limiter:   worker.NewLimiter(cfg.Embed.RequestsPerSecond, cfg.Embed.Burst),
		store:     st,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// ProcessResult is the outcome of ingesting one document.
type ProcessResult struct {
	PatchID  string          `json:"patch_id"`
	Patch    model.Patch     `json:"patch"`
	Motives  []model.Motive  `json:"motives,omitempty"`
	Morphism *model.Morphism `json:"morphism,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}

// ProcessText ingests one document: extract, embed, validate, store, and
// diff against the source's previous snapshot. Embedding failures degrade
// to a warning; validation failures reject the document.
func (p *Pipeline) ProcessText(ctx context.Context, source, sourceID, text string) (*ProcessResult, error) {
	result := &ProcessResult{}

	// 1. Extract facts
	raw, err := p.extractor.ExtractFacts(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract facts: %w", err)
	}
	raw = extract.Normalize(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("no facts extracted from %s", source)
	}
	p.logger.Debug().Str("source", source).Int("facts", len(raw)).Msg("Facts extracted")

	patch := extract.BuildPatch(source, sourceID, raw, time.Now().UTC())

	// 2. Embed, degrading to an unembedded patch on provider failure
	if p.embedder != nil {
		embedded, err := embed.EmbedPatch(ctx, p.embedder, p.limiter, patch)
		if err != nil {
			warning := fmt.Sprintf("embedding failed, continuing without vectors: %v", err)
			result.Warnings = append(result.Warnings, warning)
			p.logger.Warn().Err(err).Str("source", source).Msg("Embedding failed")
		} else {
			patch = embedded
		}
	}

	// 3. Validate before anything is persisted
	report := model.ValidatePatch(patch)
	if !report.Valid {
		return nil, fmt.Errorf("patch failed validation: %s", report.Violations[0].Message)
	}

	// 4. Find the previous snapshot before storing the new one
	var prev *model.Patch
	prevID, err := p.store.LatestForSource(sourceID)
	switch {
	case err == nil:
		pp, err := p.store.GetPatch(prevID)
		if err != nil {
			return nil, fmt.Errorf("load previous patch: %w", err)
		}
		prev = &pp
	case errors.Is(err, store.ErrNotFound):
		// first snapshot for this source
	default:
		return nil, fmt.Errorf("look up previous patch: %w", err)
	}

	// 5. Persist
	id, err := p.store.StorePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("store patch: %w", err)
	}
	result.PatchID = id
	result.Patch = patch

	// 6. Cluster into motives
	result.Motives = motive.ExtractAll(patch, p.cfg.Cluster, p.cfg.Motive)

	// 7. Diff against the previous snapshot
	if prev != nil {
		counts := morphism.MotiveCounts{
			From: len(motive.ExtractAll(*prev, p.cfg.Cluster, p.cfg.Motive)),
			To:   len(result.Motives),
		}
		m := morphism.Compute(*prev, patch, morphism.Options{
			Reason:       fmt.Sprintf("reprocessed %s", source),
			Weights:      &p.cfg.Gain,
			MotiveCounts: &counts,
		})
		if err := p.store.StoreMorphism(m); err != nil {
			return nil, fmt.Errorf("store morphism: %w", err)
		}
		result.Morphism = &m
		p.logger.Debug().
			Str("from", m.FromPatch).
			Str("to", m.ToPatch).
			Str("type", string(m.Type)).
			Msg("Morphism recorded")
	}

	return result, nil
}
