// Package vector provides the embedding store and cosine-similarity search over it.
package vector

import "context"

// VectorIndex defines vector storage and similarity search.
type VectorIndex interface {
	// Put stores or replaces the vector for id.
	Put(ctx context.Context, id string, vector []float32) error
	Get(id string) ([]float32, bool)
	// Delete removes the vector for id. Unknown ids are ignored.
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query []float32, k int) ([]*VectorResult, error)
	Size() int
	Dimensions() int
}

// VectorResult is a single vector search hit.
type VectorResult struct {
	ID    string
	Score float64 // cosine similarity
}
