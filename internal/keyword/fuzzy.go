package keyword

import (
	"github.com/hyperjump/humansearch/internal/fuzzy"
)

// FuzzySearch matches every query token against the vocabulary with matcher and sums
// the postings of each accepted term. Postings of a term equal to the query token
// count fully; other accepted terms are scaled by weight.
func (x *SearchIndex) FuzzySearch(tokens []string, matcher *fuzzy.Matcher, tolerance int, weight float64) []*Hit {
	if len(tokens) == 0 {
		return nil
	}
	vocab := x.Vocabulary()
	hits := NewHitSet()
	for _, tok := range tokens {
		for _, m := range matcher.FindSimilar(tok, vocab, tolerance) {
			w := weight
			if m.Term == tok {
				w = 1.0
			}
			hits.Add(x.Postings(m.Term), w)
		}
	}
	return hits.Hits()
}
