package vectormath

import (
	"math"
	"testing"
)

func TestCosine_SelfSimilarity(t *testing.T) {
	v := []float64{0.3, -1.2, 4.5, 0.01}

	sim, ok := Cosine(v, v)
	if !ok {
		t.Fatal("expected defined similarity for identical vectors")
	}
	if math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("expected self-similarity 1.0, got %f", sim)
	}
}

func TestCosine_Symmetry(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-4, 0.5, 2}

	ab, _ := Cosine(a, b)
	ba, _ := Cosine(b, a)

	if ab != ba {
		t.Errorf("cosine not symmetric: %f vs %f", ab, ba)
	}
}

func TestCosine_Undefined(t *testing.T) {
	if _, ok := Cosine([]float64{1, 2}, []float64{1, 2, 3}); ok {
		t.Error("expected undefined for mismatched lengths")
	}
	if _, ok := Cosine(nil, []float64{1}); ok {
		t.Error("expected undefined for nil input")
	}
	if _, ok := Cosine([]float64{}, []float64{}); ok {
		t.Error("expected undefined for empty vectors")
	}
}

func TestCosine_ZeroMagnitude(t *testing.T) {
	sim, ok := Cosine([]float64{0, 0, 0}, []float64{1, 2, 3})
	if !ok {
		t.Fatal("zero-magnitude similarity should be defined")
	}
	if sim != 0 {
		t.Errorf("expected 0.0 for zero-magnitude vector, got %f", sim)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	sim, ok := Cosine([]float64{1, 0}, []float64{0, 1})
	if !ok {
		t.Fatal("expected defined similarity")
	}
	if math.Abs(sim) > 1e-9 {
		t.Errorf("expected 0.0 for orthogonal vectors, got %f", sim)
	}
}

func TestEuclidean(t *testing.T) {
	d, ok := Euclidean([]float64{0, 0}, []float64{3, 4})
	if !ok {
		t.Fatal("expected defined distance")
	}
	if math.Abs(d-5.0) > 1e-9 {
		t.Errorf("expected distance 5.0, got %f", d)
	}

	if _, ok := Euclidean([]float64{1}, []float64{1, 2}); ok {
		t.Error("expected undefined for mismatched lengths")
	}
}

func TestCentroid(t *testing.T) {
	c, ok := Centroid([][]float64{
		{1, 2, 3},
		{3, 4, 5},
	})
	if !ok {
		t.Fatal("expected defined centroid")
	}

	want := []float64{2, 3, 4}
	for i := range want {
		if math.Abs(c[i]-want[i]) > 1e-9 {
			t.Errorf("centroid[%d]: expected %f, got %f", i, want[i], c[i])
		}
	}
}

func TestCentroid_Undefined(t *testing.T) {
	if _, ok := Centroid(nil); ok {
		t.Error("expected undefined for empty input")
	}
	if _, ok := Centroid([][]float64{{1, 2}, {1}}); ok {
		t.Error("expected undefined for ragged vectors")
	}
}
