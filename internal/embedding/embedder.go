// Package embedding turns text into fixed-dimension vectors for semantic ranking.
package embedding

import (
	"context"
	"sort"
	"strings"

	"github.com/hyperjump/humansearch/internal/models"
)

// DefaultDimensions is the embedding width used when none is configured.
const DefaultDimensions = 384

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// DocumentText joins the Text fields of a document, ordered by field name, with single spaces.
// It is the text a document is embedded from.
func DocumentText(fields map[string]models.FieldValue) string {
	names := make([]string, 0, len(fields))
	for name, v := range fields {
		if _, ok := v.(models.Text); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, string(fields[name].(models.Text)))
	}
	return strings.Join(parts, " ")
}

// IsZero reports whether every component of v is zero.
func IsZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
