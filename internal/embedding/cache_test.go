package embedding

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorCache_LookupStore(t *testing.T) {
	c := NewVectorCache(2)
	v, ok := c.Lookup("a")
	assert.False(t, ok)
	assert.Nil(t, v)

	c.Store("a", []float32{1, 2, 3})
	v, ok = c.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, v)

	c.Store("b", []float32{4, 5})
	c.Store("c", []float32{6}) // drops a
	_, ok = c.Lookup("a")
	assert.False(t, ok)
	_, ok = c.Lookup("b")
	assert.True(t, ok)
	_, ok = c.Lookup("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())

	hits, misses := c.Counts()
	assert.Equal(t, uint64(3), hits)
	assert.Equal(t, uint64(2), misses)
}

func TestVectorCache_LookupRefreshesRecency(t *testing.T) {
	c := NewVectorCache(2)
	c.Store("a", []float32{1})
	c.Store("b", []float32{2})
	c.Lookup("a")
	c.Store("c", []float32{3}) // drops b, not a

	_, ok := c.Lookup("a")
	assert.True(t, ok)
	_, ok = c.Lookup("b")
	assert.False(t, ok)
}

func TestVectorCache_StoreOverwritesAndMinimumSize(t *testing.T) {
	c := NewVectorCache(0)
	c.Store("a", []float32{1})
	c.Store("a", []float32{9})
	v, _ := c.Lookup("a")
	assert.Equal(t, []float32{9}, v)
	c.Store("b", []float32{2})
	assert.Equal(t, 1, c.Len())
}

type countingEmbedder struct {
	calls atomic.Int32
	delay time.Duration
	next  Embedder
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls.Add(1)
	time.Sleep(c.delay)
	return c.next.Embed(ctx, text)
}

func (c *countingEmbedder) Dimensions() int { return c.next.Dimensions() }

func TestCachedEmbedder(t *testing.T) {
	inner := &countingEmbedder{next: NewHashEmbedder(16)}
	e := NewCachedEmbedder(inner, 10)
	ctx := context.Background()

	first, err := e.Embed(ctx, "quick fox")
	require.NoError(t, err)
	second, err := e.Embed(ctx, "quick fox")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, 1, e.Cache().Len())
	assert.Equal(t, 16, e.Dimensions())
}

func TestCachedEmbedder_ConcurrentMissesShareOneCall(t *testing.T) {
	inner := &countingEmbedder{next: NewHashEmbedder(8), delay: 50 * time.Millisecond}
	e := NewCachedEmbedder(inner, 10)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := e.Embed(context.Background(), "same text")
			assert.NoError(t, err)
			assert.Len(t, v, 8)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, inner.calls.Load(), int32(2))
}
