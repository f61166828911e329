package vector

import (
	"context"
	"fmt"
	"sort"

	"github.com/hyperjump/humansearch/internal/shardmap"
)

// MemoryIndex is an in-memory vector store searched by full linear scan.
// Vectors are kept per document id in a sharded map, so writers to different ids
// do not contend.
type MemoryIndex struct {
	dimensions int
	vectors    *shardmap.Map[[]float32]
}

// NewMemoryIndex creates an in-memory vector index with the given dimension.
func NewMemoryIndex(dimensions, shards int) (*MemoryIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &MemoryIndex{
		dimensions: dimensions,
		vectors:    shardmap.New[[]float32](shards),
	}, nil
}

// Put stores a copy of vector under id, replacing any previous vector.
func (m *MemoryIndex) Put(ctx context.Context, id string, vector []float32) error {
	if len(vector) != m.dimensions {
		return fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, len(vector), m.dimensions)
	}
	vec := make([]float32, m.dimensions)
	copy(vec, vector)
	m.vectors.Set(id, vec)
	return nil
}

// Get returns the vector stored for id.
func (m *MemoryIndex) Get(id string) ([]float32, bool) {
	return m.vectors.Get(id)
}

// Delete removes the vector stored under id, if any.
func (m *MemoryIndex) Delete(ctx context.Context, id string) error {
	m.vectors.Delete(id)
	return nil
}

// Search computes the cosine similarity of query against every stored vector and
// returns the k best, highest first. Equal scores are ordered by id.
func (m *MemoryIndex) Search(ctx context.Context, query []float32, k int) ([]*VectorResult, error) {
	if len(query) != m.dimensions {
		return nil, fmt.Errorf("query: %w: got %d, expected %d", ErrDimensionMismatch, len(query), m.dimensions)
	}
	if k <= 0 {
		return nil, nil
	}

	results := make([]*VectorResult, 0, m.vectors.Len())
	var scanErr error
	m.vectors.Range(func(id string, vec []float32) bool {
		score, err := Cosine(query, vec)
		if err != nil {
			scanErr = fmt.Errorf("vector %s: %w", id, err)
			return false
		}
		results = append(results, &VectorResult{ID: id, Score: score})
		return true
	})
	if scanErr != nil {
		return nil, scanErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Size returns the number of vectors in the index.
func (m *MemoryIndex) Size() int {
	return m.vectors.Len()
}

// Dimensions returns the vector dimension.
func (m *MemoryIndex) Dimensions() int {
	return m.dimensions
}
