// Package embedding provides vector embedding generation for text.
package embedding

import "math"

// Embedding represents a vector embedding of text.
type Embedding struct {
	Vector []float32 // The embedding vector (e.g., 384 dimensions for all-minilm)
}

// Dimensions returns the dimensionality of the embedding.
func (e Embedding) Dimensions() int {
	return len(e.Vector)
}

// Normalized returns an L2-normalized copy of the embedding. After
// normalization, inner product equals cosine similarity. Normalizing an
// already-normalized vector changes nothing, and the zero vector is
// returned unchanged.
func (e Embedding) Normalized() Embedding {
	return Embedding{Vector: Normalize(e.Vector)}
}

// Normalize returns an L2-normalized copy of a vector.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)

	out := make([]float32, len(v))
	if norm == 0 {
		copy(out, v)
		return out
	}
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
