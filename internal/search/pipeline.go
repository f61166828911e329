package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/humansearch/internal/analysis"
	"github.com/hyperjump/humansearch/internal/embedding"
	"github.com/hyperjump/humansearch/internal/keyword"
	"github.com/hyperjump/humansearch/internal/metrics"
	"github.com/hyperjump/humansearch/internal/models"
	"github.com/hyperjump/humansearch/internal/query"
)

// Result explanations, one per retrieval pass.
const (
	ExplainText     = "text match"
	ExplainSemantic = "semantic similarity match"
	ExplainFuzzy    = "fuzzy match"
)

// Search runs the retrieval pipeline for q.
//
// The text, semantic and fuzzy passes run concurrently and their results are
// concatenated in that order without merging by document id, so a document matched
// by several passes appears once per pass. Total in the response is the length of the
// returned page and facets are counted over that page only.
func (e *Engine) Search(ctx context.Context, q models.SearchQuery) (*models.SearchResponse, error) {
	start := time.Now()
	resp, err := e.search(ctx, &q, start)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.SearchRequestsTotal.WithLabelValues(status).Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	return resp, err
}

func (e *Engine) search(ctx context.Context, q *models.SearchQuery, start time.Time) (*models.SearchResponse, error) {
	if err := q.Validate(e.cfg.DefaultLimit); err != nil {
		return nil, err
	}

	text := q.Query
	if q.TypoTolerance != nil {
		text = e.typos.Correct(text, *q.TypoTolerance)
	}
	corrected := text
	if q.SynonymsEnabled() {
		text = e.synonyms.Expand(text)
	}
	tokens := analysis.Tokenize(text)

	passes, err := e.retrieve(ctx, q, corrected, tokens)
	if err != nil {
		return nil, err
	}
	var results []*models.SearchResult
	for _, p := range passes {
		results = append(results, p...)
	}

	filters := compileFilters(q.Filters)
	results = applyFilters(results, filters)

	if e.profiles.Apply(q.UserID(), results) {
		e.logger.Debug("Applied personalization boost", zap.String("user", q.UserID()))
	}

	if q.SortByRelevance() {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	}

	page := paginate(results, q.Offset, q.Limit)
	for _, r := range page {
		doc, err := e.docs.Get(r.ID)
		if err != nil {
			r.Highlights = []models.Highlight{}
			continue
		}
		r.Highlights = highlight(doc, tokens, e.cfg.SnippetWindow)
	}

	resp := &models.SearchResponse{
		Results:            page,
		Total:              len(page),
		Suggestions:        e.completions.Suggest(strings.ToLower(strings.TrimSpace(q.Query)), e.cfg.SuggestionLimit),
		RelatedQueries:     relatedQueries(q.Query, tokens),
		Facets:             facets(page),
		QueryUnderstanding: query.Understand(q.Query, tokens, q.Language),
	}

	if userID := q.UserID(); userID != "" {
		e.history.Record(userID, q.Query, resp.Total)
	}

	resp.TookMs = time.Since(start).Milliseconds()
	e.logger.Debug("Search completed",
		zap.String("query", q.Query),
		zap.Strings("tokens", tokens),
		zap.Int("matches", len(results)),
		zap.Int("returned", resp.Total),
		zap.Int64("took_ms", resp.TookMs))
	return resp, nil
}

// retrieve runs the enabled passes and returns their results as text, semantic, fuzzy.
func (e *Engine) retrieve(ctx context.Context, q *models.SearchQuery, corrected string, tokens []string) ([3][]*models.SearchResult, error) {
	var out [3][]*models.SearchResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out[0] = e.fromHits(e.index.Search(tokens), ExplainText)
		return nil
	})
	if q.SemanticEnabled() {
		g.Go(func() error {
			res, err := e.semanticPass(gctx, corrected, q.Offset+q.Limit)
			if err != nil {
				return fmt.Errorf("semantic search failed: %w", err)
			}
			out[1] = res
			return nil
		})
	}
	if q.FuzzyEnabled() {
		g.Go(func() error {
			tol := q.Tolerance(e.cfg.DefaultTypoTolerance)
			hits := e.index.FuzzySearch(tokens, e.matcher, tol, e.cfg.FuzzyWeight)
			out[2] = e.fromHits(hits, ExplainFuzzy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	metrics.PassResults.WithLabelValues("text").Observe(float64(len(out[0])))
	metrics.PassResults.WithLabelValues("semantic").Observe(float64(len(out[1])))
	metrics.PassResults.WithLabelValues("fuzzy").Observe(float64(len(out[2])))
	return out, nil
}

func (e *Engine) semanticPass(ctx context.Context, text string, k int) ([]*models.SearchResult, error) {
	vec, err := e.queryEmbedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if embedding.IsZero(vec) {
		return nil, nil
	}
	matches, err := e.vectors.Search(ctx, vec, k)
	if err != nil {
		return nil, err
	}
	var results []*models.SearchResult
	for _, m := range matches {
		if floor := e.cfg.SemanticMinScore; floor != nil && m.Score <= *floor {
			continue
		}
		doc, err := e.docs.Get(m.ID)
		if err != nil {
			continue
		}
		results = append(results, newResult(doc, m.Score, doc.FieldNames(), ExplainSemantic))
	}
	return results, nil
}

func (e *Engine) fromHits(hits []*keyword.Hit, explanation string) []*models.SearchResult {
	results := make([]*models.SearchResult, 0, len(hits))
	for _, h := range hits {
		doc, err := e.docs.Get(h.DocID)
		if err != nil {
			continue
		}
		results = append(results, newResult(doc, h.Score, h.Fields(), explanation))
	}
	return results
}

func newResult(doc *models.IndexedDocument, score float64, fields []string, explanation string) *models.SearchResult {
	return &models.SearchResult{
		ID:            doc.ID,
		Score:         score,
		MatchedFields: fields,
		Explanation:   explanation,
		Data:          doc.Metadata,
	}
}

func paginate(results []*models.SearchResult, offset, limit int) []*models.SearchResult {
	if offset >= len(results) {
		return []*models.SearchResult{}
	}
	end := min(offset+limit, len(results))
	return results[offset:end]
}

// relatedQueries appends each token to the original query, one entry per token.
func relatedQueries(raw string, tokens []string) []string {
	out := make([]string, 0, len(tokens))
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out
	}
	for _, t := range tokens {
		out = append(out, raw+" "+t)
	}
	return out
}
