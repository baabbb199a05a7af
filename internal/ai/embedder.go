// Package ai holds the embedding capability consumed by the semantic scorer.
package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnavailable is returned when no embedding backend can be used.
	ErrUnavailable = errors.New("embedder is unavailable")
	// ErrEmptyEmbedding is returned when a backend answers without vectors.
	ErrEmptyEmbedding = errors.New("embedder returned no vectors")
	// ErrDimensionMismatch is returned when vectors of one batch differ in length.
	ErrDimensionMismatch = errors.New("embedder returned vectors of different dimensions")
)

// Embedder turns texts into unit-normalized vectors, one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Describer is implemented by embedders that can report their backend.
type Describer interface {
	Provider() string
	Model() string
}

// Normalize returns v scaled to unit length. Zero vectors are returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// Dot returns the dot product of a and b over their common length.
// Callers compare vectors of one dimension; see CheckDimensions.
func Dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// CheckDimensions fails when vectors is empty, holds an empty vector or mixes
// dimensions.
func CheckDimensions(vectors [][]float32) error {
	if len(vectors) == 0 {
		return ErrEmptyEmbedding
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) == 0 {
			return ErrEmptyEmbedding
		}
		if len(v) != dim {
			return fmt.Errorf("%w: vector %d has %d values, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}
	return nil
}
