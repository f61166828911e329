// Package analysis turns raw text into index tokens: lower-casing, edge punctuation
// trimming, stop-word removal and suffix-stripping stemming.
package analysis

import (
	"strings"
	"unicode"
)

// Tokenize splits text on whitespace and returns the ordered stemmed tokens.
// Words that are empty after trimming or are stop words are dropped.
func Tokenize(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		w = trimEdges(w)
		if w == "" || IsStopWord(w) {
			continue
		}
		tokens = append(tokens, Stem(w))
	}
	return tokens
}

// Words returns the lower-cased, edge-trimmed, non-stop words of text without stemming.
// These are the surface forms offered as autocomplete terms.
func Words(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		w = trimEdges(w)
		if w == "" || IsStopWord(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}

// Normalize lower-cases a single word and trims non-alphanumeric characters from its edges.
func Normalize(word string) string {
	return trimEdges(strings.ToLower(word))
}

func trimEdges(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
