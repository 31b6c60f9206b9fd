package semantic

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by index and search operations.
var (
	ErrIndexNotBuilt     = errors.New("semantic index not built")
	ErrEmptyCorpus       = errors.New("no documents to index")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// Index is a flat inner-product index over L2-normalized vectors.
// With normalized vectors, inner product equals cosine similarity, so
// scores fall in [-1, 1]. Positions are assigned in insertion order and
// never reused; rebuilding means constructing a fresh Index.
//
// Index does no locking of its own. The Engine serializes rebuilds
// against queries.
type Index struct {
	dimensions int
	vectors    [][]float32
}

// NewIndex creates an empty index for vectors of the given dimensionality.
func NewIndex(dimensions int) *Index {
	return &Index{dimensions: dimensions}
}

// Dimensions returns the vector dimensionality the index accepts.
func (ix *Index) Dimensions() int {
	return ix.dimensions
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int {
	return len(ix.vectors)
}

// Add appends vectors to the index in order. All vectors must match the
// index dimensionality; on mismatch nothing is added.
func (ix *Index) Add(vectors [][]float32) error {
	for i, v := range vectors {
		if len(v) != ix.dimensions {
			return fmt.Errorf("%w: vector %d has %d dimensions, want %d",
				ErrDimensionMismatch, i, len(v), ix.dimensions)
		}
	}
	ix.vectors = append(ix.vectors, vectors...)
	return nil
}

// Search returns the k nearest vectors to the query by inner product,
// sorted by descending score with ties broken by ascending position.
// Fewer than k hits are returned only when the index holds fewer vectors.
func (ix *Index) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != ix.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, want %d",
			ErrDimensionMismatch, len(query), ix.dimensions)
	}
	if k <= 0 || len(ix.vectors) == 0 {
		return nil, nil
	}

	hits := make([]Hit, len(ix.vectors))
	for pos, v := range ix.vectors {
		hits[pos] = Hit{Score: dot(query, v), Position: pos}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Position < hits[j].Position
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
