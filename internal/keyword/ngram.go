package keyword

import (
	"strings"

	"github.com/hyperjump/humansearch/internal/models"
)

// NGrams returns every contiguous bigram and trigram of the lower-cased text, including
// grams that span whitespace. Duplicates are kept.
func NGrams(text string) []string {
	runes := []rune(strings.ToLower(text))
	grams := make([]string, 0, 2*len(runes))
	for n := 2; n <= 3; n++ {
		for i := 0; i+n <= len(runes); i++ {
			grams = append(grams, string(runes[i:i+n]))
		}
	}
	return grams
}

// UpdateNGramIndex adds docID to the document set of every n-gram of every Text field.
// Adding the same document twice is a no-op.
func (x *SearchIndex) UpdateNGramIndex(docID string, fields map[string]models.FieldValue) {
	var grams []string
	for _, v := range fields {
		if text, ok := v.(models.Text); ok {
			grams = append(grams, NGrams(string(text))...)
		}
	}
	if len(grams) == 0 {
		return
	}

	x.ngramMu.Lock()
	defer x.ngramMu.Unlock()
	for _, g := range grams {
		docs, ok := x.ngrams[g]
		if !ok {
			docs = make(map[string]struct{})
			x.ngrams[g] = docs
		}
		docs[docID] = struct{}{}
	}
}

// NGramCandidates returns, for each document sharing at least one n-gram with text,
// the number of distinct n-grams of text it contains.
func (x *SearchIndex) NGramCandidates(text string) map[string]int {
	seen := make(map[string]struct{})
	counts := make(map[string]int)

	x.ngramMu.RLock()
	defer x.ngramMu.RUnlock()
	for _, g := range NGrams(text) {
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		for id := range x.ngrams[g] {
			counts[id]++
		}
	}
	return counts
}

// NGramDocuments returns the ids of documents containing gram.
func (x *SearchIndex) NGramDocuments(gram string) []string {
	x.ngramMu.RLock()
	defer x.ngramMu.RUnlock()
	docs := x.ngrams[strings.ToLower(gram)]
	out := make([]string, 0, len(docs))
	for id := range docs {
		out = append(out, id)
	}
	return out
}

// NGramCount returns the number of distinct n-grams.
func (x *SearchIndex) NGramCount() int {
	x.ngramMu.RLock()
	defer x.ngramMu.RUnlock()
	return len(x.ngrams)
}
