package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/humansearch/internal/models"
)

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Results: []*models.SearchResult{
			{
				ID:            "doc1",
				Score:         1,
				Explanation:   "text match",
				MatchedFields: []string{"title"},
				Highlights: []models.Highlight{{
					Field:    "title",
					Snippets: []string{"The Quick Brown Fox"},
				}},
			},
			{ID: "doc2", Score: 0.8, Explanation: "fuzzy match"},
		},
		Total:          2,
		TookMs:         3,
		Suggestions:    []string{"quick"},
		RelatedQueries: []string{"quick fox"},
		Facets: map[string][]models.FacetValue{
			"category": {{Value: "animals", Count: 2}},
		},
		QueryUnderstanding: &models.QueryUnderstanding{Intent: "search", Confidence: 0.9},
	}
}

func TestParseOutputFormat(t *testing.T) {
	for in, want := range map[string]OutputFormat{"": OutputText, "TEXT": OutputText, "json": OutputJSON, " compact ": OutputCompact} {
		got, err := ParseOutputFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseOutputFormat("xml")
	assert.Error(t, err)
}

func TestWriteSearchResults_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearchResults(&buf, sampleResponse(), OutputText))
	out := buf.String()

	assert.Contains(t, out, "Found 2 results in 3ms")
	assert.Contains(t, out, "Intent: search (confidence 0.90)")
	assert.Contains(t, out, "[1] doc1 | Score: 1.0000 | text match")
	assert.Contains(t, out, "Fields: title")
	assert.Contains(t, out, "  title: The Quick Brown Fox")
	assert.Contains(t, out, "[2] doc2 | Score: 0.8000 | fuzzy match")
	assert.Contains(t, out, "Suggestions: quick")
	assert.Contains(t, out, "Related: quick fox")
	assert.Contains(t, out, "  category: animals (2)")
}

func TestWriteSearchResults_Compact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearchResults(&buf, sampleResponse(), OutputCompact))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1\t1.0000\tdoc1\ttext match", lines[0])
	assert.Equal(t, "2\t0.8000\tdoc2\tfuzzy match", lines[1])
}

func TestWriteSearchResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearchResults(&buf, sampleResponse(), OutputJSON))

	var decoded models.SearchResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Total)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "doc1", decoded.Results[0].ID)
}

func TestWriteSearchResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearchResults(&buf, &models.SearchResponse{}, OutputText))
	assert.Contains(t, buf.String(), "Found 0 results")
	assert.NotContains(t, buf.String(), "Facets")
}
