package autocomplete

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hyperjump/humansearch/internal/shardmap"
)

type cachedSuggestions struct {
	generation uint64
	terms      []string
}

// Engine is a concurrency-safe trie with a per-prefix suggestion cache. Every insert
// bumps a generation counter, which invalidates all cached suggestion lists.
type Engine struct {
	mu         sync.RWMutex
	trie       *Trie
	generation atomic.Uint64
	cache      *shardmap.Map[cachedSuggestions]
}

// NewEngine creates an empty autocomplete engine.
func NewEngine(shards int) *Engine {
	return &Engine{
		trie:  NewTrie(),
		cache: shardmap.New[cachedSuggestions](shards),
	}
}

// Insert adds terms to the trie.
func (e *Engine) Insert(terms ...string) {
	if len(terms) == 0 {
		return
	}
	e.mu.Lock()
	for _, t := range terms {
		e.trie.Insert(t)
	}
	e.mu.Unlock()
	e.generation.Add(1)
}

// Suggest returns up to limit completions of the lower-cased, trimmed prefix.
func (e *Engine) Suggest(prefix string, limit int) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	key := strconv.Itoa(limit) + "\x00" + prefix
	gen := e.generation.Load()
	if c, ok := e.cache.Get(key); ok && c.generation == gen {
		return append([]string{}, c.terms...)
	}

	e.mu.RLock()
	suggestions := e.trie.Suggest(prefix, limit)
	e.mu.RUnlock()

	terms := make([]string, len(suggestions))
	for i, s := range suggestions {
		terms[i] = s.Term
	}
	e.cache.Set(key, cachedSuggestions{generation: gen, terms: terms})
	return append([]string{}, terms...)
}

// SuggestWithFrequency returns completions with their insertion counts, bypassing the cache.
func (e *Engine) SuggestWithFrequency(prefix string, limit int) []Suggestion {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trie.Suggest(prefix, limit)
}

// Len returns the number of distinct terms.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trie.Len()
}
