package embedding

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_MissThenHit(t *testing.T) {
	c := NewCache(4)

	_, ok := c.Get("query")
	assert.False(t, ok)

	c.Put("query", []float32{1, 2, 3})
	vec, ok := c.Get("query")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, vec)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(3)
	c.Put("a", []float32{1})
	c.Put("b", []float32{2})
	c.Put("c", []float32{3})
	c.Put("d", []float32{4})

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, c.Len())
}

func TestCache_GetPromotesEntry(t *testing.T) {
	c := NewCache(3)
	c.Put("a", []float32{1})
	c.Put("b", []float32{2})
	c.Put("c", []float32{3})

	// touching "a" makes "b" the eviction candidate
	_, ok := c.Get("a")
	require.True(t, ok)
	c.Put("d", []float32{4})

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCache_PutUpdatesExistingKey(t *testing.T) {
	c := NewCache(2)
	c.Put("q", []float32{1})
	c.Put("q", []float32{9})

	vec, ok := c.Get("q")
	require.True(t, ok)
	assert.Equal(t, []float32{9}, vec)
	assert.Equal(t, 1, c.Len())
}

func TestCache_KeysAreExactStrings(t *testing.T) {
	c := NewCache(8)
	c.Put("what is theft", []float32{1})

	_, ok := c.Get("What is theft")
	assert.False(t, ok)
	_, ok = c.Get("what is theft ")
	assert.False(t, ok)
	_, ok = c.Get("what is theft")
	assert.True(t, ok)
}

func TestCache_NonPositiveCapacityDefaults(t *testing.T) {
	c := NewCache(0)
	for i := 0; i < DefaultCacheCapacity+10; i++ {
		c.Put(fmt.Sprintf("q%d", i), []float32{float32(i)})
	}
	assert.Equal(t, DefaultCacheCapacity, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache(64)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("q%d", j%100)
				c.Put(key, []float32{float32(n)})
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 64)
}
