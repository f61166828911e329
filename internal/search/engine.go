// Package search provides the search engine: document indexing and the multi-pass
// retrieval and ranking pipeline.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/hyperjump/humansearch/internal/analysis"
	"github.com/hyperjump/humansearch/internal/autocomplete"
	"github.com/hyperjump/humansearch/internal/config"
	"github.com/hyperjump/humansearch/internal/embedding"
	"github.com/hyperjump/humansearch/internal/fuzzy"
	"github.com/hyperjump/humansearch/internal/keyword"
	"github.com/hyperjump/humansearch/internal/metrics"
	"github.com/hyperjump/humansearch/internal/models"
	"github.com/hyperjump/humansearch/internal/personalization"
	"github.com/hyperjump/humansearch/internal/query"
	"github.com/hyperjump/humansearch/internal/storage"
	"github.com/hyperjump/humansearch/internal/vector"
)

// Engine indexes documents and answers search queries. All methods are safe for
// concurrent use. Indexing a document updates the document store, the inverted and
// n-gram indexes, the autocomplete trie and the vector store one after another, so a
// concurrent search may see a document in some of them but not yet in others.
type Engine struct {
	cfg    config.EngineConfig
	logger *zap.Logger

	docs          storage.DocumentStore
	index         *keyword.SearchIndex
	vectors       vector.VectorIndex
	baseEmbedder  embedding.Embedder
	queryEmbedder *embedding.CachedEmbedder
	matcher       *fuzzy.Matcher
	synonyms      *query.SynonymEngine
	typos         *query.TypoCorrector
	completions   *autocomplete.Engine
	history       *personalization.SearchHistory
	profiles      *personalization.Engine
	pool          *ants.Pool

	extraSynonyms [][]string
	extraWords    []string
	now           func() time.Time
}

// Stats summarizes the engine's in-memory structures.
type Stats struct {
	Documents         int `json:"documents"`
	Vocabulary        int `json:"vocabulary"`
	NGrams            int `json:"ngrams"`
	Embeddings        int `json:"embeddings"`
	AutocompleteTerms int `json:"autocomplete_terms"`
	SynonymWords      int `json:"synonym_words"`
	DictionaryWords   int `json:"dictionary_words"`
	Profiles          int `json:"profiles"`
}

// Candidate is a document sharing character n-grams with a lookup text.
type Candidate struct {
	ID     string `json:"id"`
	Shared int    `json:"shared"`
}

// NewEngine creates an engine. Zero values in cfg take their defaults.
func NewEngine(cfg config.EngineConfig, opts ...Option) (*Engine, error) {
	full := config.Config{Engine: cfg}
	config.ApplyDefaults(&full)
	cfg = full.Engine

	algs, err := cfg.Algorithms()
	if err != nil {
		return nil, fmt.Errorf("invalid fuzzy algorithms: %w", err)
	}

	e := &Engine{
		cfg:    cfg,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.baseEmbedder == nil {
		e.baseEmbedder = embedding.NewHashEmbedder(cfg.EmbeddingDimensions)
	}

	vectors, err := vector.NewMemoryIndex(e.baseEmbedder.Dimensions(), cfg.ShardCount)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector index: %w", err)
	}
	pool, err := ants.NewPool(cfg.IndexWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to create index worker pool: %w", err)
	}

	e.docs = storage.NewMemoryStorage(cfg.ShardCount)
	e.index = keyword.NewSearchIndex()
	e.vectors = vectors
	e.queryEmbedder = embedding.NewCachedEmbedder(e.baseEmbedder, cfg.QueryCacheSize)
	e.matcher = fuzzy.NewMatcher(algs...)
	e.synonyms = query.NewSynonymEngine(append(query.DefaultSynonymGroups(), e.extraSynonyms...))
	e.typos = query.NewTypoCorrector(append(query.DefaultWords(), e.extraWords...))
	e.completions = autocomplete.NewEngine(cfg.ShardCount)
	e.history = personalization.NewSearchHistory(cfg.HistoryCapacity)
	e.profiles = personalization.NewEngine(cfg.PersonalizationBoost, cfg.ShardCount)
	e.pool = pool
	return e, nil
}

// Close releases the indexing worker pool.
func (e *Engine) Close() {
	e.pool.Release()
}

// Index indexes or re-indexes a document. Every field is converted before anything is
// written, so an unsupported field value fails the call without a partial write.
// Re-indexing keeps the original creation time; postings of the previous version are
// not removed.
func (e *Engine) Index(ctx context.Context, id string, fields map[string]interface{}, metadata map[string]interface{}) error {
	err := e.index1(ctx, id, fields, metadata)
	if err != nil {
		metrics.IndexedDocumentsTotal.WithLabelValues("error").Inc()
		e.logger.Warn("Failed to index document", zap.String("id", id), zap.Error(err))
		return err
	}
	metrics.IndexedDocumentsTotal.WithLabelValues("ok").Inc()
	metrics.Documents.Set(float64(e.docs.Count()))
	return nil
}

func (e *Engine) index1(ctx context.Context, id string, fields map[string]interface{}, metadata map[string]interface{}) error {
	if id == "" {
		return models.ErrEmptyDocumentID
	}
	values, err := models.ConvertFields(fields)
	if err != nil {
		return fmt.Errorf("document %s: %w", id, err)
	}
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	vec, err := e.baseEmbedder.Embed(ctx, embedding.DocumentText(values))
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}
	if embedding.IsZero(vec) {
		vec = nil
	}
	if vec != nil && len(vec) != e.vectors.Dimensions() {
		return fmt.Errorf("document %s: %w: got %d, expected %d",
			id, vector.ErrDimensionMismatch, len(vec), e.vectors.Dimensions())
	}

	now := e.now().Unix()
	doc := e.docs.Put(&models.IndexedDocument{
		ID:        id,
		Fields:    values,
		Metadata:  metadata,
		Embedding: vec,
		CreatedAt: now,
		UpdatedAt: now,
	})

	postings := 0
	var words []string
	for _, name := range doc.TextFieldNames() {
		postings += e.index.IndexField(id, name, values[name])
		words = append(words, analysis.Words(string(values[name].(models.Text)))...)
	}
	e.index.UpdateNGramIndex(id, values)
	e.completions.Insert(words...)
	e.typos.AddWords(words...)

	if vec != nil {
		err = e.vectors.Put(ctx, id, vec)
	} else {
		// a re-index without text must not leave the previous vector searchable
		err = e.vectors.Delete(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}

	e.logger.Debug("Indexed document",
		zap.String("id", id),
		zap.Int("fields", len(values)),
		zap.Int("postings", postings),
		zap.Bool("embedded", vec != nil))
	return nil
}

// IndexBatch indexes documents concurrently on the worker pool. It waits for every
// submitted document and returns how many were indexed together with the joined
// errors of the ones that failed.
func (e *Engine) IndexBatch(ctx context.Context, docs []models.DocumentInput) (int, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
		indexed atomic.Int64
	)
	addErr := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			addErr(err)
			break
		}
		d := d
		wg.Add(1)
		submitErr := e.pool.Submit(func() {
			defer wg.Done()
			if err := e.Index(ctx, d.ID, d.Fields, d.Metadata); err != nil {
				addErr(err)
				return
			}
			indexed.Add(1)
		})
		if submitErr != nil {
			wg.Done()
			addErr(fmt.Errorf("document %s: %w", d.ID, submitErr))
		}
	}
	wg.Wait()

	n := int(indexed.Load())
	e.logger.Info("Indexed batch", zap.Int("submitted", len(docs)), zap.Int("indexed", n))
	return n, errors.Join(errs...)
}

// GetDocument returns the stored document or models.ErrDocumentNotFound.
func (e *Engine) GetDocument(id string) (*models.IndexedDocument, error) {
	return e.docs.Get(id)
}

// ListDocuments returns stored documents ordered by id.
func (e *Engine) ListDocuments(offset, limit int) []*models.IndexedDocument {
	return e.docs.List(offset, limit)
}

// DocumentCount returns the number of stored documents.
func (e *Engine) DocumentCount() int {
	return e.docs.Count()
}

// Stats returns sizes of the engine's structures.
func (e *Engine) Stats() Stats {
	return Stats{
		Documents:         e.docs.Count(),
		Vocabulary:        e.index.VocabularySize(),
		NGrams:            e.index.NGramCount(),
		Embeddings:        e.vectors.Size(),
		AutocompleteTerms: e.completions.Len(),
		SynonymWords:      e.synonyms.Len(),
		DictionaryWords:   e.typos.Len(),
		Profiles:          e.profiles.Len(),
	}
}

// Suggest returns autocomplete suggestions for prefix. A non-positive limit uses the
// configured suggestion limit.
func (e *Engine) Suggest(prefix string, limit int) []string {
	if limit <= 0 {
		limit = e.cfg.SuggestionLimit
	}
	return e.completions.Suggest(prefix, limit)
}

// Candidates returns documents sharing character bigrams or trigrams with text, most
// shared first, at most limit of them when limit is positive.
func (e *Engine) Candidates(text string, limit int) []Candidate {
	counts := e.index.NGramCandidates(text)
	out := make([]Candidate, 0, len(counts))
	for id, n := range counts {
		out = append(out, Candidate{ID: id, Shared: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Shared != out[j].Shared {
			return out[i].Shared > out[j].Shared
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SetUserProfile stores a user profile. Searches by a user with a profile get the
// personalization boost.
func (e *Engine) SetUserProfile(p *models.UserProfile) error {
	if p == nil || p.UserID == "" {
		return fmt.Errorf("%w: user id is required", models.ErrInvalidQuery)
	}
	e.profiles.SetProfile(p)
	return nil
}

// UserProfile returns the stored profile of userID.
func (e *Engine) UserProfile(userID string) (*models.UserProfile, bool) {
	return e.profiles.Profile(userID)
}

// History returns the user's recorded searches, oldest first.
func (e *Engine) History(userID string) []models.SearchHistoryEntry {
	return e.history.Entries(userID)
}

// RecordClick attaches docID to the user's latest search for query and to the user's
// profile. It fails with models.ErrDocumentNotFound for unknown documents.
func (e *Engine) RecordClick(userID, query, docID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", models.ErrInvalidQuery)
	}
	if _, err := e.docs.Get(docID); err != nil {
		return err
	}
	if !e.history.RecordClick(userID, query, docID) {
		e.logger.Debug("Click without matching history entry",
			zap.String("user", userID), zap.String("query", query))
	}
	e.profiles.AddClick(userID, docID)
	return nil
}
