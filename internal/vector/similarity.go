package vector

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two vectors of different length are compared
// or a vector does not match an index's dimension.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// InnerProduct returns the inner product of two vectors (for normalized vectors equals cosine similarity).
func InnerProduct(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// L2Norm returns the L2 norm of a vector.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b in [-1, 1]. Vectors of different
// length yield ErrDimensionMismatch. If either vector has zero norm the similarity is 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}
	na, nb := L2Norm(a), L2Norm(b)
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return InnerProduct(a, b) / (na * nb), nil
}
