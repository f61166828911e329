package models

// Position is a [Start, End) rune offset range inside a field's text.
type Position struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Highlight holds snippets around query-token occurrences in one field.
type Highlight struct {
	Field     string     `json:"field"`
	Snippets  []string   `json:"snippets"`
	Positions []Position `json:"positions"`
}

// SearchResult represents a single search hit.
type SearchResult struct {
	ID            string                 `json:"id"`
	Score         float64                `json:"score"`
	Highlights    []Highlight            `json:"highlights"`
	MatchedFields []string               `json:"matched_fields"`
	Explanation   string                 `json:"explanation,omitempty"`
	Data          map[string]interface{} `json:"data"`
}

// FacetValue is a distinct value of a metadata field and the number of results carrying it.
type FacetValue struct {
	Value interface{} `json:"value"`
	Count int         `json:"count"`
}

// QueryUnderstanding summarizes how the query was read.
type QueryUnderstanding struct {
	Intent     string   `json:"intent"`
	Entities   []string `json:"entities"`
	Keywords   []string `json:"keywords"`
	Categories []string `json:"categories"`
	Sentiment  float64  `json:"sentiment"`
	Language   string   `json:"language"`
	Confidence float64  `json:"confidence"`
}

// SearchResponse is the response for a search request.
// Total is the size of the returned page, not the number of matching documents.
type SearchResponse struct {
	Results            []*SearchResult         `json:"results"`
	Total              int                     `json:"total"`
	TookMs             int64                   `json:"took_ms"`
	Suggestions        []string                `json:"suggestions"`
	RelatedQueries     []string                `json:"related_queries"`
	Facets             map[string][]FacetValue `json:"facets"`
	QueryUnderstanding *QueryUnderstanding     `json:"query_understanding,omitempty"`
}
