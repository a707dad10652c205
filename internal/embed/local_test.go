package embed

import (
	"context"
	"reflect"
	"testing"

	"github.com/ppiankov/vkm/internal/config"
	"github.com/ppiankov/vkm/internal/model"
	"github.com/ppiankov/vkm/internal/vectormath"
)

func localProvider() *LocalProvider {
	return NewLocalProvider(config.EmbedConfig{Dimensions: 32})
}

func TestLocalProvider_Deterministic(t *testing.T) {
	p := localProvider()
	ctx := context.Background()

	a, err := p.Embed(ctx, []string{"noodle soup from the coast"})
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	b, _ := p.Embed(ctx, []string{"noodle soup from the coast"})

	if !reflect.DeepEqual(a, b) {
		t.Error("identical texts must produce identical vectors")
	}
}

func TestLocalProvider_FixedLength(t *testing.T) {
	p := localProvider()

	vectors, err := p.Embed(context.Background(), []string{"a", "b c d", ""})
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	for i, v := range vectors {
		if len(v) != 32 {
			t.Errorf("vector %d has length %d, want 32", i, len(v))
		}
	}
	if err := checkLengths(vectors); err != nil {
		t.Errorf("length check failed: %v", err)
	}
}

func TestLocalProvider_SelfSimilarity(t *testing.T) {
	p := localProvider()

	vectors, _ := p.Embed(context.Background(), []string{"trade routes", "trade routes"})
	sim, ok := vectormath.Cosine(vectors[0], vectors[1])
	if !ok || sim < 0.999 {
		t.Errorf("expected self-similarity ~1.0, got %f ok=%v", sim, ok)
	}
}

func TestCheckLengths(t *testing.T) {
	if err := checkLengths([][]float64{{1, 2}, {3, 4}}); err != nil {
		t.Errorf("consistent lengths rejected: %v", err)
	}
	if err := checkLengths([][]float64{{1, 2}, {3}}); err == nil {
		t.Error("inconsistent lengths accepted")
	}
	if err := checkLengths(nil); err != nil {
		t.Errorf("empty batch rejected: %v", err)
	}
}

func TestEmbedPatch(t *testing.T) {
	p := model.Patch{
		ID: "p1",
		Facts: []model.Fact{
			{ID: "f1", Text: "noodles travelled the coast", Confidence: 0.5},
			{ID: "f2", Text: "monsoon winds set the schedule", Confidence: 0.5},
		},
	}

	out, err := EmbedPatch(context.Background(), localProvider(), nil, p)
	if err != nil {
		t.Fatalf("embed patch failed: %v", err)
	}

	if len(out.Embeddings) != 2 {
		t.Fatalf("expected 2 embeddings, got %d", len(out.Embeddings))
	}
	if out.Embeddings[0].ClaimRef != "f1" || out.Embeddings[1].ClaimRef != "f2" {
		t.Errorf("claim refs wrong: %+v", out.Embeddings)
	}
	if out.Embeddings[0].Model != "local-hash-v1" {
		t.Errorf("model tag missing: %+v", out.Embeddings[0])
	}
	if len(p.Embeddings) != 0 {
		t.Error("input patch was mutated")
	}
}

func TestEmbedPatch_NilProvider(t *testing.T) {
	p := model.Patch{ID: "p1", Facts: []model.Fact{{ID: "f1", Text: "x", Confidence: 0.5}}}

	out, err := EmbedPatch(context.Background(), nil, nil, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Embeddings) != 0 {
		t.Error("nil provider should leave the patch unembedded")
	}
}

func TestNewProvider_Factory(t *testing.T) {
	p, err := NewProvider(config.EmbedConfig{Provider: "local"})
	if err != nil || p == nil {
		t.Fatalf("expected local provider, got %v / %v", p, err)
	}

	p, err = NewProvider(config.EmbedConfig{Provider: ""})
	if err != nil || p != nil {
		t.Errorf("expected disabled provider, got %v / %v", p, err)
	}

	if _, err := NewProvider(config.EmbedConfig{Provider: "nope"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
