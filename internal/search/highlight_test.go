package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/humansearch/internal/models"
)

func TestHighlight(t *testing.T) {
	doc := &models.IndexedDocument{
		ID: "d",
		Fields: map[string]models.FieldValue{
			"title": models.Text("Fox and FOX"),
			"body":  models.Text("nothing here"),
			"year":  models.Number(2001),
		},
	}

	hs := highlight(doc, []string{"fox", "fox"}, 2)
	require.Len(t, hs, 1)
	assert.Equal(t, "title", hs[0].Field)
	assert.Equal(t, []models.Position{{Start: 0, End: 3}, {Start: 8, End: 11}}, hs[0].Positions)
	assert.Equal(t, []string{"Fox a", "d FOX"}, hs[0].Snippets)
}

func TestHighlight_RuneOffsets(t *testing.T) {
	doc := &models.IndexedDocument{
		Fields: map[string]models.FieldValue{"name": models.Text("Café Über")},
	}
	hs := highlight(doc, []string{"über"}, 50)
	require.Len(t, hs, 1)
	assert.Equal(t, []models.Position{{Start: 5, End: 9}}, hs[0].Positions)
	assert.Equal(t, []string{"Café Über"}, hs[0].Snippets)
}

func TestHighlight_NoTokens(t *testing.T) {
	doc := &models.IndexedDocument{Fields: map[string]models.FieldValue{"t": models.Text("x")}}
	assert.Empty(t, highlight(doc, nil, 50))
}

func TestFacets(t *testing.T) {
	results := []*models.SearchResult{
		{ID: "1", Data: map[string]interface{}{"color": "red", "size": 2.0, "meta": map[string]interface{}{"a": 1}}},
		{ID: "2", Data: map[string]interface{}{"color": "blue", "size": 2.0}},
		{ID: "3", Data: map[string]interface{}{"color": "red", "list": []interface{}{"x"}}},
	}

	got := facets(results)
	assert.Equal(t, []models.FacetValue{{Value: "red", Count: 2}, {Value: "blue", Count: 1}}, got["color"])
	assert.Equal(t, []models.FacetValue{{Value: 2.0, Count: 2}}, got["size"])
	assert.NotContains(t, got, "meta")
	assert.NotContains(t, got, "list")
	assert.Empty(t, facets(nil))
}

func TestRelatedQueries(t *testing.T) {
	assert.Equal(t, []string{"red car red", "red car car", "red car red"}, relatedQueries("red car", []string{"red", "car", "red"}))
	assert.Empty(t, relatedQueries("  ", []string{"x"}))
}

func TestPaginate(t *testing.T) {
	rs := []*models.SearchResult{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	assert.Len(t, paginate(rs, 0, 2), 2)
	assert.Len(t, paginate(rs, 2, 10), 1)
	assert.Empty(t, paginate(rs, 3, 10))
}
