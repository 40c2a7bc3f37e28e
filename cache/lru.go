// Package cache provides a small construct-on-miss LRU cache.
//
// The cache builds missing values itself: GetOrCreate takes a constructor
// and runs it under the cache lock, so concurrent callers asking for the
// same key construct the value once. All operations are O(1).
package cache

import (
	"container/list"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrInvalidCapacity is returned when a cache is created with a non-positive
// capacity.
var ErrInvalidCapacity = errors.New("cache: capacity must be positive")

// LRU is a thread-safe fixed-capacity cache with least-recently-used
// eviction.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	capacity  int
	items     map[K]*list.Element
	evictList *list.List

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates an LRU holding at most capacity entries.
func New[K comparable, V any](capacity int) (*LRU[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &LRU[K, V]{
		capacity:  capacity,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
	}, nil
}

// GetOrCreate returns the cached value for key, constructing and caching it
// with create on a miss. A failing create caches nothing and returns the
// error.
func (c *LRU[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elt, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(elt)
		return elt.Value.(*entry[K, V]).value, nil
	}
	c.misses.Add(1)

	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}

	if c.evictList.Len() == c.capacity {
		c.evict()
	}
	c.items[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: v})

	return v, nil
}

// Get returns the cached value for key without constructing on a miss.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elt, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(elt)
		return elt.Value.(*entry[K, V]).value, true
	}
	c.misses.Add(1)

	var zero V
	return zero, false
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Stats returns the cumulative hit and miss counts.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *LRU[K, V]) evict() {
	elt := c.evictList.Back()
	if elt == nil {
		return
	}
	c.evictList.Remove(elt)
	delete(c.items, elt.Value.(*entry[K, V]).key)
}
