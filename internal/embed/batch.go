package embed

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ppiankov/vkm/internal/model"
	"github.com/ppiankov/vkm/internal/worker"
)

// EmbedPatch returns a new patch carrying one embedding per fact, produced
// by the provider. A nil limiter skips rate limiting. The input patch is
// never mutated.
func EmbedPatch(ctx context.Context, provider Provider, limiter *worker.Limiter, p model.Patch) (model.Patch, error) {
	if provider == nil || len(p.Facts) == 0 {
		return p, nil
	}

	if limiter != nil {
		if err := limiter.Wait(ctx, provider.Name()); err != nil {
			return model.Patch{}, fmt.Errorf("rate limit: %w", err)
		}
	}

	texts := make([]string, len(p.Facts))
	for i, f := range p.Facts {
		texts[i] = f.Text
	}

	vectors, err := provider.Embed(ctx, texts)
	if err != nil {
		return model.Patch{}, fmt.Errorf("embed patch %s: %w", p.ID, err)
	}
	if len(vectors) != len(p.Facts) {
		return model.Patch{}, fmt.Errorf("provider returned %d vectors for %d facts", len(vectors), len(p.Facts))
	}
	if err := checkLengths(vectors); err != nil {
		return model.Patch{}, err
	}

	out := p
	out.Embeddings = make([]model.Embedding, len(p.Facts))
	for i, f := range p.Facts {
		out.Embeddings[i] = model.Embedding{
			ID:       uuid.NewString(),
			ClaimRef: f.ID,
			Model:    provider.Model(),
			Vector:   vectors[i],
		}
	}
	return out, nil
}
