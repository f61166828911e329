package shardmap

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_GetSetDelete(t *testing.T) {
	m := New[int](4)

	_, ok := m.Get("missing")
	assert.False(t, ok)

	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"a", "b"}, m.Keys())

	m.Delete("a")
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())

	m.Clear()
	assert.Zero(t, m.Len())
}

func TestMap_DefaultShards(t *testing.T) {
	m := New[string](0)
	assert.Len(t, m.shards, DefaultShards)
}

func TestMap_Update(t *testing.T) {
	m := New[int](8)
	inc := func(old int, _ bool) int { return old + 1 }

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Update("counter", inc)
		}()
	}
	wg.Wait()

	v, _ := m.Get("counter")
	assert.Equal(t, 50, v)
}

func TestMap_RangeStopsEarly(t *testing.T) {
	m := New[int](2)
	for i := 0; i < 10; i++ {
		m.Set(fmt.Sprintf("k%d", i), i)
	}
	visited := 0
	m.Range(func(string, int) bool {
		visited++
		return visited < 3
	})
	assert.Equal(t, 3, visited)
}

func TestMap_ConcurrentWriters(t *testing.T) {
	m := New[int](16)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				m.Set(fmt.Sprintf("%d-%d", w, i), i)
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 800, m.Len())
}
