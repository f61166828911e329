package embedding

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/hyperjump/humansearch/pkg/utils"
)

// HashEmbedder derives a deterministic pseudo-embedding from the SHA-256 digest of the text.
// It is not a trained model: equal texts map to identical vectors and similar texts
// are not necessarily close.
type HashEmbedder struct {
	dimensions int
}

// NewHashEmbedder returns an embedder producing vectors of the given dimension.
func NewHashEmbedder(dimensions int) *HashEmbedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &HashEmbedder{dimensions: dimensions}
}

// Embed cycles through the digest bytes, adds a small position-dependent offset to each,
// squashes with tanh and L2-normalizes. Empty text yields the zero vector.
func (e *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	emb := make([]float32, e.dimensions)
	if text == "" {
		return emb, nil
	}

	sum := sha256.Sum256([]byte(text))
	dims := float64(e.dimensions)
	for i := range emb {
		b := float64(sum[i%len(sum)])
		offset := (float64(i)/dims*2 - 1) * 0.1
		emb[i] = float32(math.Tanh(b/255*2 - 1 + offset))
	}
	utils.NormalizeL2(emb)
	return emb, nil
}

// Dimensions returns the embedding dimension.
func (e *HashEmbedder) Dimensions() int {
	return e.dimensions
}
