// Package keyword provides the in-memory inverted index and character n-gram index
// used for exact-token and fuzzy keyword search.
package keyword

import (
	"sort"
	"sync"

	"github.com/hyperjump/humansearch/internal/analysis"
	"github.com/hyperjump/humansearch/internal/models"
)

// Posting records one occurrence of a token in a document field.
type Posting struct {
	DocID    string  `json:"doc_id"`
	Field    string  `json:"field"`
	Position int     `json:"position"`
	Score    float64 `json:"score"`
}

// SearchIndex is an inverted index from stemmed tokens to postings plus an n-gram index
// from character bigrams/trigrams to document ids. The two structures are locked
// independently. Postings are only ever appended: re-indexing a document adds new
// postings and leaves the old ones in place.
type SearchIndex struct {
	mu       sync.RWMutex
	inverted map[string][]Posting

	ngramMu sync.RWMutex
	ngrams  map[string]map[string]struct{}
}

// NewSearchIndex creates an empty index.
func NewSearchIndex() *SearchIndex {
	return &SearchIndex{
		inverted: make(map[string][]Posting),
		ngrams:   make(map[string]map[string]struct{}),
	}
}

// IndexField appends one posting with score 1.0 per token of a Text value.
// Other field kinds are not posted. It returns the number of postings added.
func (x *SearchIndex) IndexField(docID, field string, value models.FieldValue) int {
	text, ok := value.(models.Text)
	if !ok {
		return 0
	}
	tokens := analysis.Tokenize(string(text))
	if len(tokens) == 0 {
		return 0
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	for pos, tok := range tokens {
		x.inverted[tok] = append(x.inverted[tok], Posting{
			DocID:    docID,
			Field:    field,
			Position: pos,
			Score:    1.0,
		})
	}
	return len(tokens)
}

// Postings returns a copy of the posting list for token.
func (x *SearchIndex) Postings(token string) []Posting {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return append([]Posting(nil), x.inverted[token]...)
}

// Vocabulary returns every indexed token in sorted order.
func (x *SearchIndex) Vocabulary() []string {
	x.mu.RLock()
	vocab := make([]string, 0, len(x.inverted))
	for tok := range x.inverted {
		vocab = append(vocab, tok)
	}
	x.mu.RUnlock()
	sort.Strings(vocab)
	return vocab
}

// VocabularySize returns the number of distinct indexed tokens.
func (x *SearchIndex) VocabularySize() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.inverted)
}

// Search sums posting scores per document for every query token. Hits are returned in
// the order their documents were first reached.
func (x *SearchIndex) Search(tokens []string) []*Hit {
	hits := NewHitSet()
	x.mu.RLock()
	defer x.mu.RUnlock()
	for _, tok := range tokens {
		hits.Add(x.inverted[tok], 1.0)
	}
	return hits.Hits()
}
