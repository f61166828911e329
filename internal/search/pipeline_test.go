package search

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/humansearch/internal/config"
	"github.com/hyperjump/humansearch/internal/models"
)

// textOnly disables every pass but the text pass.
func textOnly(q string) models.SearchQuery {
	return models.SearchQuery{
		Query:    q,
		Fuzzy:    models.Bool(false),
		Semantic: models.Bool(false),
		Synonyms: models.Bool(false),
	}
}

func resultsWith(results []*models.SearchResult, id, explanation string) []*models.SearchResult {
	var out []*models.SearchResult
	for _, r := range results {
		if r.ID == id && r.Explanation == explanation {
			out = append(out, r)
		}
	}
	return out
}

func TestSearch_QuickFoxHighlight(t *testing.T) {
	e := newTestEngine(t)
	mustIndex(t, e, "doc1", map[string]interface{}{"title": "The Quick Brown Fox"}, nil)

	resp, err := e.Search(context.Background(), models.SearchQuery{Query: "quick fox"})
	require.NoError(t, err)

	text := resultsWith(resp.Results, "doc1", ExplainText)
	require.Len(t, text, 1)
	assert.Equal(t, []string{"title"}, text[0].MatchedFields)
	require.Len(t, text[0].Highlights, 1)

	h := text[0].Highlights[0]
	assert.Equal(t, "title", h.Field)
	require.NotEmpty(t, h.Snippets)
	snippet := strings.ToLower(h.Snippets[0])
	assert.Contains(t, snippet, "quick")
	assert.Contains(t, snippet, "fox")
	assert.Contains(t, h.Positions, models.Position{Start: 4, End: 9})
	assert.Contains(t, h.Positions, models.Position{Start: 16, End: 19})
}

func TestSearch_StemmedMatchIsFullWeight(t *testing.T) {
	e := newTestEngine(t)
	mustIndex(t, e, "doc1", map[string]interface{}{"name": "running"}, nil)

	resp, err := e.Search(context.Background(), models.SearchQuery{
		Query:    "run",
		Fuzzy:    models.Bool(true),
		Semantic: models.Bool(false),
	})
	require.NoError(t, err)

	text := resultsWith(resp.Results, "doc1", ExplainText)
	require.Len(t, text, 1)
	assert.Equal(t, 1.0, text[0].Score)
	for _, r := range resp.Results {
		assert.NotEqual(t, 0.8, r.Score)
	}
}

func TestSearch_DuplicateAcrossPasses(t *testing.T) {
	e := newTestEngine(t)
	mustIndex(t, e, "doc1", map[string]interface{}{"title": "database"}, nil)

	resp, err := e.Search(context.Background(), models.SearchQuery{
		Query:    "database",
		Semantic: models.Bool(false),
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "doc1", resp.Results[0].ID)
	assert.Equal(t, "doc1", resp.Results[1].ID)
	assert.Equal(t, ExplainText, resp.Results[0].Explanation)
	assert.Equal(t, ExplainFuzzy, resp.Results[1].Explanation)
	assert.Equal(t, 2, resp.Total)
}

func TestSearch_FuzzyNearMissIsDownWeighted(t *testing.T) {
	e := newTestEngine(t)
	mustIndex(t, e, "doc1", map[string]interface{}{"title": "colour"}, nil)

	resp, err := e.Search(context.Background(), models.SearchQuery{
		Query:    "color",
		Semantic: models.Bool(false),
		Synonyms: models.Bool(false),
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, ExplainFuzzy, resp.Results[0].Explanation)
	assert.InDelta(t, 0.8, resp.Results[0].Score, 1e-9)

	resp, err = e.Search(context.Background(), models.SearchQuery{
		Query:         "color",
		TypoTolerance: models.Int(0),
		Semantic:      models.Bool(false),
		Synonyms:      models.Bool(false),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearch_TotalIsPageLength(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 15; i++ {
		mustIndex(t, e, fmt.Sprintf("doc-%02d", i), map[string]interface{}{"title": fmt.Sprintf("apple number %d", i)}, nil)
	}

	q := textOnly("apple")
	q.Limit = 5
	q.Offset = 3
	resp, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, resp.Results, 5)
	assert.Equal(t, 5, resp.Total)

	q.Offset = 13
	resp, err = e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)
	assert.Equal(t, 2, resp.Total)

	q.Offset = 40
	resp, err = e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Zero(t, resp.Total)
}

func TestSearch_DefaultLimit(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 12; i++ {
		mustIndex(t, e, fmt.Sprintf("doc-%02d", i), map[string]interface{}{"title": "pear"}, nil)
	}
	resp, err := e.Search(context.Background(), textOnly("pear"))
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Total)
}

func TestSearch_FacetsCountOnlyThePage(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 6; i++ {
		category := "tools"
		if i%2 == 1 {
			category = "garden"
		}
		mustIndex(t, e, fmt.Sprintf("doc-%d", i),
			map[string]interface{}{"title": "widget"},
			map[string]interface{}{"category": category, "rating": float64(i % 3), "tags": []interface{}{"x"}})
	}

	q := textOnly("widget")
	q.Limit = 4
	resp, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, resp.Results, 4)

	sum := 0
	for _, fv := range resp.Facets["category"] {
		sum += fv.Count
	}
	assert.Equal(t, 4, sum)
	assert.NotContains(t, resp.Facets, "tags")
	assert.Contains(t, resp.Facets, "rating")
}

func TestSearch_Filters(t *testing.T) {
	e := newTestEngine(t)
	mustIndex(t, e, "cheap", map[string]interface{}{"title": "lamp"}, map[string]interface{}{"price": 5.0})
	mustIndex(t, e, "dear", map[string]interface{}{"title": "lamp"}, map[string]interface{}{"price": 50.0})
	mustIndex(t, e, "unpriced", map[string]interface{}{"title": "lamp"}, nil)

	q := textOnly("lamp")
	q.Filters = []models.SearchFilter{{Field: "price", Operator: models.OpGt, Value: 10.0}}
	resp, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "dear", resp.Results[0].ID)

	q.Filters = []models.SearchFilter{{Field: "price", Operator: models.OpNotExists}}
	resp, err = e.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "unpriced", resp.Results[0].ID)

	q.Filters = []models.SearchFilter{{Field: "price", Operator: models.OpRegex, Value: "("}}
	resp, err = e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearch_PersonalizationBoost(t *testing.T) {
	e := newTestEngine(t)
	mustIndex(t, e, "doc1", map[string]interface{}{"title": "violin"}, nil)
	require.NoError(t, e.SetUserProfile(&models.UserProfile{UserID: "known"}))

	for _, tt := range []struct {
		user string
		want float64
	}{
		{"", 1.0},
		{"stranger", 1.0},
		{"known", 1.1},
	} {
		t.Run("user="+tt.user, func(t *testing.T) {
			q := textOnly("violin")
			q.Context = &models.SearchContext{UserID: tt.user}
			resp, err := e.Search(context.Background(), q)
			require.NoError(t, err)
			require.Len(t, resp.Results, 1)
			assert.InDelta(t, tt.want, resp.Results[0].Score, 1e-9)
		})
	}
}

func TestSearch_RecordsHistory(t *testing.T) {
	e := newTestEngine(t)
	mustIndex(t, e, "doc1", map[string]interface{}{"title": "trumpet"}, nil)

	q := textOnly("trumpet")
	_, err := e.Search(context.Background(), q)
	require.NoError(t, err)

	q.Context = &models.SearchContext{UserID: "u1", SessionID: "s1"}
	_, err = e.Search(context.Background(), q)
	require.NoError(t, err)

	history := e.History("u1")
	require.Len(t, history, 1)
	assert.Equal(t, "trumpet", history[0].Query)
	assert.Equal(t, 1, history[0].ResultCount)
}

func TestSearch_TypoCorrection(t *testing.T) {
	e := newTestEngine(t)
	mustIndex(t, e, "doc1", map[string]interface{}{"title": "elephant"}, nil)

	q := textOnly("elephnt")
	resp, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)

	q.TypoTolerance = models.Int(2)
	resp, err = e.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "doc1", resp.Results[0].ID)
}

func TestSearch_SynonymExpansion(t *testing.T) {
	e := newTestEngine(t)
	mustIndex(t, e, "doc1", map[string]interface{}{"title": "fast delivery"}, nil)

	q := textOnly("quick")
	resp, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)

	q.Synonyms = nil
	resp, err = e.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, []string{"quick", "fast"}, resp.QueryUnderstanding.Keywords)
}

func TestSearch_SemanticPass(t *testing.T) {
	e := newTestEngine(t)
	mustIndex(t, e, "doc1", map[string]interface{}{"title": "Completely unrelated words"}, nil)

	resp, err := e.Search(context.Background(), models.SearchQuery{
		Query:    "Completely unrelated words",
		Fuzzy:    models.Bool(false),
		Synonyms: models.Bool(false),
	})
	require.NoError(t, err)

	// identical text embeds identically
	semantic := resultsWith(resp.Results, "doc1", ExplainSemantic)
	require.Len(t, semantic, 1)
	assert.InDelta(t, 1.0, semantic[0].Score, 1e-5)
	assert.Equal(t, []string{"title"}, semantic[0].MatchedFields)
}

func TestSearch_ResponseExtras(t *testing.T) {
	e := newTestEngine(t)
	mustIndex(t, e, "doc1", map[string]interface{}{"title": "carpet cleaning"}, nil)
	mustIndex(t, e, "doc2", map[string]interface{}{"title": "car wash"}, nil)

	resp, err := e.Search(context.Background(), textOnly("car"))
	require.NoError(t, err)

	assert.Equal(t, []string{"car", "carpet"}, resp.Suggestions)
	assert.Equal(t, []string{"car car"}, resp.RelatedQueries)
	require.NotNil(t, resp.QueryUnderstanding)
	assert.Equal(t, "search", resp.QueryUnderstanding.Intent)
	assert.Equal(t, "en", resp.QueryUnderstanding.Language)
	assert.Equal(t, []string{"single_word"}, resp.QueryUnderstanding.Categories)
	assert.GreaterOrEqual(t, resp.TookMs, int64(0))
}

func TestSearch_InvalidQuery(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Search(context.Background(), models.SearchQuery{Query: "x", Limit: -1})
	assert.ErrorIs(t, err, models.ErrInvalidQuery)
	_, err = e.Search(context.Background(), models.SearchQuery{Query: "x", TypoTolerance: models.Int(9)})
	assert.ErrorIs(t, err, models.ErrInvalidQuery)
}

func TestSearch_EmptyQuery(t *testing.T) {
	e := newTestEngine(t)
	mustIndex(t, e, "doc1", map[string]interface{}{"title": "anything"}, nil)

	resp, err := e.Search(context.Background(), models.SearchQuery{})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Empty(t, resp.RelatedQueries)
	assert.NotNil(t, resp.Facets)
}

func BenchmarkSearch(b *testing.B) {
	e, err := NewEngine(config.EngineConfig{})
	require.NoError(b, err)
	defer e.Close()
	for i := 0; i < 1000; i++ {
		_ = e.Index(context.Background(), fmt.Sprintf("doc-%d", i), map[string]interface{}{
			"title": fmt.Sprintf("document %d about searching and indexing", i),
		}, nil)
	}
	q := models.SearchQuery{Query: "searching documents"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Search(context.Background(), q)
	}
}
