// Package indexer loads document files and feeds them to the search engine.
package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/humansearch/internal/models"
)

// DocumentSink receives loaded documents. *search.Engine satisfies it.
type DocumentSink interface {
	IndexBatch(ctx context.Context, docs []models.DocumentInput) (int, error)
}

// Indexer indexes document files into a DocumentSink.
type Indexer struct {
	sink       DocumentSink
	extensions []string
	logger     *zap.Logger
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithLogger sets the indexer logger.
func WithLogger(l *zap.Logger) IndexerOption {
	return func(idx *Indexer) {
		if l != nil {
			idx.logger = l
		}
	}
}

// WithExtensions restricts IndexDirectory to files with the given extensions.
func WithExtensions(exts []string) IndexerOption {
	return func(idx *Indexer) { idx.extensions = exts }
}

// NewIndexer creates an indexer writing to sink.
func NewIndexer(sink DocumentSink, opts ...IndexerOption) *Indexer {
	idx := &Indexer{
		sink:       sink,
		extensions: []string{".json", ".jsonl"},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// IndexFile loads the documents of one file and indexes them. It returns the number of
// documents indexed.
func (idx *Indexer) IndexFile(ctx context.Context, path string) (int, error) {
	docs, err := LoadFile(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	n, err := idx.sink.IndexBatch(ctx, docs)
	if err != nil {
		return n, fmt.Errorf("index %s: %w", path, err)
	}
	idx.logger.Debug("indexer file indexed", zap.String("path", path), zap.Int("documents", n))
	return n, nil
}

// IndexDirectory indexes every matching file under dir. Files that fail are logged and
// skipped; the first failure is returned after the walk.
func (idx *Indexer) IndexDirectory(ctx context.Context, dir string) (int, error) {
	total := 0
	var firstErr error
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !extensionAllowed(filepath.Ext(path), idx.extensions) {
			return nil
		}
		n, err := idx.IndexFile(ctx, path)
		total += n
		if err != nil {
			idx.logger.Warn("indexer failed to index file", zap.String("path", path), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
		return nil
	})
	if err != nil {
		return total, err
	}
	return total, firstErr
}

// HandleRemove is called when a watched file disappears. Indexed documents cannot be
// deleted, so the event is only logged.
func (idx *Indexer) HandleRemove(path string) {
	idx.logger.Info("indexer file removed; its documents stay indexed", zap.String("path", path))
}

func extensionAllowed(ext string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimPrefix(a, "."), strings.TrimPrefix(ext, ".")) {
			return true
		}
	}
	return false
}
