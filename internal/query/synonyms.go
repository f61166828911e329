package query

import (
	"strings"
	"sync"

	"github.com/hyperjump/humansearch/internal/analysis"
)

// SynonymEngine expands queries with synonyms from an in-memory table.
type SynonymEngine struct {
	mu    sync.RWMutex
	table map[string][]string
}

// NewSynonymEngine creates an engine seeded with the given groups.
func NewSynonymEngine(groups [][]string) *SynonymEngine {
	s := &SynonymEngine{table: make(map[string][]string)}
	for _, g := range groups {
		s.AddGroup(g)
	}
	return s
}

// AddGroup makes every word of group a synonym of the others. Words are lower-cased;
// a word already in the table gets the new synonyms appended after its existing ones.
func (s *SynonymEngine) AddGroup(group []string) {
	words := make([]string, 0, len(group))
	for _, w := range group {
		if w = analysis.Normalize(w); w != "" {
			words = append(words, w)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range words {
		for _, other := range words {
			if other != w && !contains(s.table[w], other) {
				s.table[w] = append(s.table[w], other)
			}
		}
	}
}

// Synonyms returns the synonyms of word.
func (s *SynonymEngine) Synonyms(word string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.table[analysis.Normalize(word)]...)
}

// Len returns the number of words with at least one synonym.
func (s *SynonymEngine) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.table)
}

// Expand appends "(synonym)" after every word that has one, using its first synonym.
// Original words are kept, so "quick fox" becomes "quick (fast) fox".
func (s *SynonymEngine) Expand(query string) string {
	words := strings.Fields(query)
	out := make([]string, 0, 2*len(words))

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range words {
		out = append(out, w)
		if syns := s.table[analysis.Normalize(w)]; len(syns) > 0 {
			out = append(out, "("+syns[0]+")")
		}
	}
	return strings.Join(out, " ")
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
