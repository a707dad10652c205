// Package embed supplies embedding vectors for fact texts. Like
// extraction, embedding happens before data enters the core engine; the
// engine only sees finished vectors.
package embed

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/vkm/internal/config"
)

// Provider is the embedding collaborator boundary.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Model returns the model tag recorded on produced embeddings.
	Model() string

	// Embed returns one fixed-length vector per input text, in order.
	Embed(ctx context.Context, texts []string) ([][]float64, error)

	// IsAvailable checks whether the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// NewProvider creates an embedding provider based on configuration.
// An empty provider name disables embedding and returns (nil, nil).
func NewProvider(cfg config.EmbedConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)

	case "ollama":
		return NewOllamaProvider(cfg)

	case "local":
		return NewLocalProvider(cfg), nil

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, ollama, local)", cfg.Provider)
	}
}

// checkLengths verifies every vector in a batch has the same dimension.
// The engine does not validate semantic quality, only length consistency.
func checkLengths(vectors [][]float64) error {
	if len(vectors) == 0 {
		return nil
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("inconsistent embedding length at index %d: %d != %d", i, len(v), dim)
		}
	}
	return nil
}
