// Package lru implements the least-recently-used eviction engine and its
// LRU-K refinement.
package lru

import (
	"sync"

	"github.com/polycache/polycache/internal/chain"
	"github.com/polycache/polycache/policy"
)

// Cache is a capacity-bounded LRU store: a key index over an intrusive
// chain ordered by recency (front = coldest, back = most recently used).
// Safe for concurrent use; one mutex guards all state.
type Cache[K comparable, V any] struct {
	mu    sync.Mutex
	cap   int
	items map[K]*chain.Node[K, V]
	order *chain.List[K, V]
	stats policy.Stats
}

// New returns an LRU cache holding at most capacity entries. A
// non-positive capacity yields a cache on which Put is a no-op and Get
// always misses.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		cap:   capacity,
		items: make(map[K]*chain.Node[K, V]),
		order: chain.New[K, V](),
	}
}

// Put inserts or overwrites k→v and marks the entry most recently used.
// At capacity, the coldest entry is evicted first.
func (c *Cache[K, V]) Put(k K, v V) {
	if c.cap <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.items[k]; ok {
		n.Val = v
		n.Count++
		c.order.MoveToBack(n)
		return
	}
	for len(c.items) >= c.cap {
		c.evictColdest()
	}
	n := chain.NewNode(k, v)
	c.items[k] = n
	c.order.PushBack(n)
}

// Get returns the value for k and promotes the entry to most recently
// used. Reads mutate position; use Contains for a side-effect-free probe.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.items[k]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	n.Count++
	c.order.MoveToBack(n)
	c.stats.Hits++
	return n.Val, true
}

// GetDefault returns the value for k, or the zero value on miss.
func (c *Cache[K, V]) GetDefault(k K) V {
	v, _ := c.Get(k)
	return v
}

// Contains reports whether k is resident without promoting it.
func (c *Cache[K, V]) Contains(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[k]
	return ok
}

// Remove deletes k if present and reports whether it was resident.
func (c *Cache[K, V]) Remove(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.items[k]
	if !ok {
		return false
	}
	c.order.Remove(n)
	delete(c.items, k)
	return true
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns a snapshot of the hit/miss/eviction tallies.
func (c *Cache[K, V]) Stats() policy.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// evictColdest drops the entry adjacent to the head sentinel. mu held.
func (c *Cache[K, V]) evictColdest() {
	n := c.order.PopFront()
	if n == nil {
		return
	}
	delete(c.items, n.Key)
	c.stats.Evictions++
}

var _ policy.Policy[string, int] = (*Cache[string, int])(nil)
