package search

import (
	"go.uber.org/zap"

	"github.com/hyperjump/humansearch/internal/embedding"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEmbedder replaces the SHA-256 pseudo-embedder. Query embeddings are still cached.
func WithEmbedder(embedder embedding.Embedder) Option {
	return func(e *Engine) {
		if embedder != nil {
			e.baseEmbedder = embedder
		}
	}
}

// WithSynonymGroups adds synonym groups on top of the built-in ones.
func WithSynonymGroups(groups [][]string) Option {
	return func(e *Engine) {
		e.extraSynonyms = append(e.extraSynonyms, groups...)
	}
}

// WithWords adds words to the typo-correction dictionary on top of the built-in list.
func WithWords(words []string) Option {
	return func(e *Engine) {
		e.extraWords = append(e.extraWords, words...)
	}
}
