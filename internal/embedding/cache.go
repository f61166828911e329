package embedding

import (
	"container/list"
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// VectorCache is a fixed-size LRU of vectors keyed by text. Cached vectors are
// shared between callers and must not be modified.
type VectorCache struct {
	mu      sync.Mutex
	size    int
	recency *list.List // front is most recently used
	byText  map[string]*list.Element
	hits    uint64
	misses  uint64
}

type cachedVector struct {
	text string
	vec  []float32
}

// NewVectorCache creates a cache holding at most size vectors (at least one).
func NewVectorCache(size int) *VectorCache {
	return &VectorCache{
		size:    max(size, 1),
		recency: list.New(),
		byText:  make(map[string]*list.Element),
	}
}

// Lookup returns the vector for text and marks it recently used.
func (c *VectorCache) Lookup(text string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.byText[text]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.recency.MoveToFront(el)
	return el.Value.(*cachedVector).vec, true
}

// Store adds or refreshes the vector for text and drops the least recently used
// entry once the cache is over size.
func (c *VectorCache) Store(text string, vec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.byText[text]; ok {
		el.Value.(*cachedVector).vec = vec
		c.recency.MoveToFront(el)
		return
	}
	c.byText[text] = c.recency.PushFront(&cachedVector{text: text, vec: vec})
	for c.recency.Len() > c.size {
		last := c.recency.Back()
		delete(c.byText, last.Value.(*cachedVector).text)
		c.recency.Remove(last)
	}
}

// Len returns the number of cached vectors.
func (c *VectorCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byText)
}

// Counts returns the lookup hits and misses so far.
func (c *VectorCache) Counts() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// CachedEmbedder memoizes another Embedder. Concurrent misses for the same text
// share a single call to the wrapped embedder.
type CachedEmbedder struct {
	next   Embedder
	cache  *VectorCache
	flight singleflight.Group
}

// NewCachedEmbedder caches up to size vectors produced by next.
func NewCachedEmbedder(next Embedder, size int) *CachedEmbedder {
	return &CachedEmbedder{next: next, cache: NewVectorCache(size)}
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.cache.Lookup(text); ok {
		return vec, nil
	}
	v, err, _ := c.flight.Do(text, func() (interface{}, error) {
		vec, err := c.next.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		c.cache.Store(text, vec)
		return vec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]float32), nil
}

func (c *CachedEmbedder) Dimensions() int {
	return c.next.Dimensions()
}

// Cache exposes the underlying cache.
func (c *CachedEmbedder) Cache() *VectorCache {
	return c.cache
}
