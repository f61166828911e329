package search

import (
	"unicode"

	"github.com/hyperjump/humansearch/internal/models"
)

// highlight finds every case-insensitive occurrence of each token in the document's
// text fields. Each occurrence yields a snippet of up to window runes on either side
// and its rune offsets. Fields without occurrences are omitted.
func highlight(doc *models.IndexedDocument, tokens []string, window int) []models.Highlight {
	out := make([]models.Highlight, 0)
	if len(tokens) == 0 {
		return out
	}
	for _, name := range doc.TextFieldNames() {
		text := []rune(string(doc.Fields[name].(models.Text)))
		lower := lowerRunes(text)

		h := models.Highlight{Field: name, Snippets: []string{}, Positions: []models.Position{}}
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			needle := lowerRunes([]rune(tok))
			for _, start := range indexAll(lower, needle) {
				end := start + len(needle)
				h.Positions = append(h.Positions, models.Position{Start: start, End: end})
				h.Snippets = append(h.Snippets, string(text[max(0, start-window):min(len(text), end+window)]))
			}
		}
		if len(h.Positions) > 0 {
			out = append(out, h)
		}
	}
	return out
}

// lowerRunes lowers rune by rune so offsets stay aligned with the original text.
func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// indexAll returns the start offsets of every, possibly overlapping, occurrence.
func indexAll(haystack, needle []rune) []int {
	var idx []int
	if len(needle) == 0 || len(needle) > len(haystack) {
		return idx
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if haystack[i+j] != r {
				continue outer
			}
		}
		idx = append(idx, i)
	}
	return idx
}
