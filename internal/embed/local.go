package embed

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/ppiankov/vkm/internal/config"
)

var localTokenSplit = regexp.MustCompile(`\W+`)

// LocalProvider produces deterministic token-hash embeddings with no network
// dependency. The vectors carry no semantic meaning beyond shared-token
// overlap; they exist so the pipeline and clustering can run offline and in
// tests.
type LocalProvider struct {
	dimensions int
}

// NewLocalProvider creates a local hashing embedder.
func NewLocalProvider(cfg config.EmbedConfig) *LocalProvider {
	dims := cfg.Dimensions
	if dims <= 0 {
		dims = 64
	}
	return &LocalProvider{dimensions: dims}
}

// Name returns the provider name.
func (p *LocalProvider) Name() string {
	return "local"
}

// Model returns the embedding model tag.
func (p *LocalProvider) Model() string {
	return "local-hash-v1"
}

// IsAvailable always reports true; there is nothing to reach.
func (p *LocalProvider) IsAvailable(ctx context.Context) bool {
	return true
}

// Embed hashes each token into a fixed-length signed accumulator and
// normalizes the result. Identical texts always produce identical vectors.
func (p *LocalProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = p.embedOne(text)
	}
	return vectors, nil
}

func (p *LocalProvider) embedOne(text string) []float64 {
	v := make([]float64, p.dimensions)

	for _, token := range localTokenSplit.Split(strings.ToLower(text), -1) {
		if token == "" {
			continue
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(token))
		sum := h.Sum64()

		idx := int(sum % uint64(p.dimensions))
		if sum&(1<<63) != 0 {
			v[idx] -= 1
		} else {
			v[idx] += 1
		}
	}

	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range v {
			v[i] /= norm
		}
	}
	return v
}
