// Package shardmap provides a string-keyed concurrent map split into independently
// locked shards, so writers to different keys rarely contend.
package shardmap

import (
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultShards is used when a non-positive shard count is requested.
const DefaultShards = 32

type shard[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// Map is a concurrent map from string keys to V.
type Map[V any] struct {
	shards []*shard[V]
}

// New creates a Map with n shards.
func New[V any](n int) *Map[V] {
	if n <= 0 {
		n = DefaultShards
	}
	m := &Map[V]{shards: make([]*shard[V], n)}
	for i := range m.shards {
		m.shards[i] = &shard[V]{items: make(map[string]V)}
	}
	return m
}

func (m *Map[V]) shardFor(key string) *shard[V] {
	return m.shards[xxhash.Sum64String(key)%uint64(len(m.shards))]
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	s := m.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Set stores v under key, replacing any previous value.
func (m *Map[V]) Set(key string, v V) {
	s := m.shardFor(key)
	s.mu.Lock()
	s.items[key] = v
	s.mu.Unlock()
}

// Update atomically replaces the value under key with fn(old, exists).
func (m *Map[V]) Update(key string, fn func(old V, exists bool) V) V {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[key]
	v := fn(old, ok)
	s.items[key] = v
	return v
}

// Delete removes key.
func (m *Map[V]) Delete(key string) {
	s := m.shardFor(key)
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// Clear removes every entry.
func (m *Map[V]) Clear() {
	for _, s := range m.shards {
		s.mu.Lock()
		s.items = make(map[string]V)
		s.mu.Unlock()
	}
}

// Len returns the number of entries. Shards are counted one at a time, so the result
// may be stale under concurrent writes.
func (m *Map[V]) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.items)
		s.mu.RUnlock()
	}
	return n
}

// Range calls fn for every entry until fn returns false. Each shard is read-locked
// while it is visited; fn must not write to the map.
func (m *Map[V]) Range(fn func(key string, v V) bool) {
	for _, s := range m.shards {
		s.mu.RLock()
		for k, v := range s.items {
			if !fn(k, v) {
				s.mu.RUnlock()
				return
			}
		}
		s.mu.RUnlock()
	}
}

// Keys returns all keys in sorted order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Range(func(k string, _ V) bool {
		keys = append(keys, k)
		return true
	})
	sort.Strings(keys)
	return keys
}
