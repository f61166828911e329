package query

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/hyperjump/humansearch/internal/analysis"
	"github.com/hyperjump/humansearch/internal/fuzzy"
)

// TypoCorrector replaces unknown query words with the closest dictionary word.
type TypoCorrector struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

// NewTypoCorrector creates a corrector over the given words.
func NewTypoCorrector(words []string) *TypoCorrector {
	c := &TypoCorrector{words: make(map[string]struct{}, len(words))}
	c.AddWords(words...)
	return c
}

// AddWords adds lower-cased words to the dictionary.
func (c *TypoCorrector) AddWords(words ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range words {
		if w = analysis.Normalize(w); w != "" {
			c.words[w] = struct{}{}
		}
	}
}

// Contains reports whether word is in the dictionary, ignoring case and edge punctuation.
func (c *TypoCorrector) Contains(word string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.words[analysis.Normalize(word)]
	return ok
}

// Len returns the dictionary size.
func (c *TypoCorrector) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.words)
}

// Correct rewrites each whitespace-separated word of query. Known words are kept.
// An unknown word is replaced by the dictionary word with the smallest Levenshtein
// distance not above tolerance, ties going to the alphabetically first word. The
// replacement keeps the word's edge punctuation and a leading capital.
// Words without a close match are kept unchanged.
func (c *TypoCorrector) Correct(query string, tolerance int) string {
	words := strings.Fields(query)
	for i, w := range words {
		words[i] = c.correctWord(w, tolerance)
	}
	return strings.Join(words, " ")
}

func (c *TypoCorrector) correctWord(word string, tolerance int) string {
	prefix, core, suffix := splitEdges(word)
	if core == "" || tolerance <= 0 {
		return word
	}
	lower := strings.ToLower(core)

	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.words[lower]; ok {
		return word
	}

	best := ""
	bestDist := tolerance + 1
	coreLen := utf8.RuneCountInString(lower)
	for candidate := range c.words {
		// Length difference is a lower bound on the edit distance.
		diff := utf8.RuneCountInString(candidate) - coreLen
		if diff > tolerance || -diff > tolerance {
			continue
		}
		d := fuzzy.LevenshteinDistance(lower, candidate)
		if d < bestDist || (d == bestDist && candidate < best) {
			best = candidate
			bestDist = d
		}
	}
	if best == "" {
		return word
	}

	if r, _ := utf8.DecodeRuneInString(core); unicode.IsUpper(r) {
		best = capitalize(best)
	}
	return prefix + best + suffix
}

// splitEdges splits word into leading punctuation, the alphanumeric core and trailing punctuation.
func splitEdges(word string) (prefix, core, suffix string) {
	isEdge := func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }
	start := strings.IndexFunc(word, func(r rune) bool { return !isEdge(r) })
	if start < 0 {
		return word, "", ""
	}
	end := strings.LastIndexFunc(word, func(r rune) bool { return !isEdge(r) })
	_, size := utf8.DecodeRuneInString(word[end:])
	end += size
	return word[:start], word[start:end], word[end:]
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
