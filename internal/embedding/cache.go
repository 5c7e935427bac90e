package embedding

import (
	"container/list"
	"sync"
)

// DefaultCacheCapacity bounds the query-embedding cache when no explicit
// capacity is configured.
const DefaultCacheCapacity = 512

// Cache is a bounded LRU cache from query text to its embedding vector.
// Keys are the exact query string: no case or whitespace normalization, so
// "foo" and "Foo " are distinct entries. Safe for concurrent use. All
// operations succeed; a full cache evicts, it never refuses.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
}

type cacheEntry struct {
	key    string
	vector []float32
}

// NewCache creates a cache holding at most capacity entries.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached vector for query, promoting the entry to most
// recently used on a hit.
func (c *Cache) Get(query string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[query]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).vector, true
}

// Put stores the vector under query, evicting the least recently used entry
// when the cache is over capacity.
func (c *Cache) Put(query string, vector []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[query]; ok {
		el.Value.(*cacheEntry).vector = vector
		c.order.MoveToFront(el)
		return
	}
	c.entries[query] = c.order.PushFront(&cacheEntry{key: query, vector: vector})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Len returns the current number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
