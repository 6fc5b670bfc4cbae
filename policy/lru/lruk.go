package lru

import "github.com/polycache/polycache/policy"

// KCache is the LRU-K refinement: a main LRU cache guarded by an LRU
// history of access counts. A key is admitted into the main cache only
// after k qualifying accesses; until then writes are recorded in the
// history's bookkeeping but the value itself is not retrievable. That
// dropped-write window is the documented LRU-K trade-off — the history
// filters one-shot keys out of the main cache.
//
// The two caches have independent locks and are never locked together, so
// KCache needs no lock of its own.
type KCache[K comparable, V any] struct {
	main    *Cache[K, V]
	history *Cache[K, int] // key -> qualifying-access count
	k       int
}

// NewK returns an LRU-K cache. capacity bounds the main cache,
// historyCapacity bounds the access-count history, and k is the promotion
// threshold (clamped to >= 1; k == 1 degenerates to plain LRU).
func NewK[K comparable, V any](capacity, historyCapacity, k int) *KCache[K, V] {
	if k < 1 {
		k = 1
	}
	return &KCache[K, V]{
		main:    New[K, V](capacity),
		history: New[K, int](historyCapacity),
		k:       k,
	}
}

// Get records the access in the history (creating a count of 1 for an
// unseen key), then delegates to the main cache. Lookups never promote by
// themselves; only Put crosses the threshold.
func (c *KCache[K, V]) Get(k K) (V, bool) {
	c.history.Put(k, c.history.GetDefault(k)+1)
	return c.main.Get(k)
}

// GetDefault returns the value for k, or the zero value on miss.
func (c *KCache[K, V]) GetDefault(k K) V {
	v, _ := c.Get(k)
	return v
}

// Put overwrites in place when k is already resident in the main cache.
// Otherwise the key's history count is bumped; reaching the threshold
// moves the key out of the history and admits the new value into the main
// cache. Below the threshold the value is dropped (see type doc).
func (c *KCache[K, V]) Put(k K, v V) {
	if c.main.Contains(k) {
		c.main.Put(k, v)
		return
	}
	count := c.history.GetDefault(k) + 1
	if count >= c.k {
		c.history.Remove(k)
		c.main.Put(k, v)
		return
	}
	c.history.Put(k, count)
}

// Len returns the number of entries resident in the main cache.
func (c *KCache[K, V]) Len() int { return c.main.Len() }

// Stats returns the main cache's tallies. History lookups are
// bookkeeping, not cache traffic, and are not counted.
func (c *KCache[K, V]) Stats() policy.Stats { return c.main.Stats() }

var _ policy.Policy[string, int] = (*KCache[string, int])(nil)
