package vectormath

import "math"

// Cosine computes cosine similarity between two vectors.
// The second return value is false when the similarity is undefined:
// mismatched lengths or empty input. Callers must treat an undefined
// result as "not similar", never as a score.
// Zero-magnitude vectors are defined and yield 0.0.
func Cosine(a, b []float64) (float64, bool) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	na := math.Sqrt(normA)
	nb := math.Sqrt(normB)

	if na == 0 || nb == 0 {
		return 0, true
	}

	return dot / (na * nb), true
}

// Euclidean computes the L2 distance between two vectors.
// Returns false when lengths mismatch or either input is empty.
func Euclidean(a, b []float64) (float64, bool) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, false
	}

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), true
}

// Centroid computes the element-wise mean of a set of vectors.
// Returns false on an empty input or ragged vector lengths.
func Centroid(vectors [][]float64) ([]float64, bool) {
	if len(vectors) == 0 {
		return nil, false
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, false
	}

	out := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, false
		}
		for i := range v {
			out[i] += v[i]
		}
	}

	n := float64(len(vectors))
	for i := range out {
		out[i] /= n
	}
	return out, true
}
