// Package arc implements the Adaptive Replacement Cache: an LRU-shaped
// recency partition and an LFU-shaped frequency partition, each with a
// ghost history of recently demoted keys. Ghost hits shift capacity
// between the partitions one slot at a time, so the split self-tunes to
// whether the workload favors recency or frequency.
package arc

import (
	"github.com/polycache/polycache/internal/util"
	"github.com/polycache/polycache/policy"
)

// Defaults applied by New for non-positive parameters.
const (
	DefaultCapacity           = 10
	DefaultTransformThreshold = 2
)

// Cache is the composed ARC engine. Both partitions start sized at the
// full nominal capacity; ghost-driven transfer keeps the live split
// bounded. There is no cache-wide lock: each partition locks itself, the
// ghost check locks each transiently and sequentially, and the top-level
// hit/miss tallies are padded atomics.
//
// Every write enters through the recency partition; the frequency
// partition is populated only when an entry's access count reaches the
// transform threshold, and re-admission after any ghost hit also goes
// through recency.
type Cache[K comparable, V any] struct {
	recency   *lruPart[K, V]
	frequency *lfuPart[K, V]

	hits   util.PaddedAtomicUint64
	misses util.PaddedAtomicUint64
}

// New returns an ARC cache. Non-positive capacity selects DefaultCapacity;
// a non-positive transformThreshold selects DefaultTransformThreshold.
func New[K comparable, V any](capacity, transformThreshold int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if transformThreshold <= 0 {
		transformThreshold = DefaultTransformThreshold
	}
	return &Cache[K, V]{
		recency:   newLRUPart[K, V](capacity, uint64(transformThreshold)),
		frequency: newLFUPart[K, V](capacity),
	}
}

// checkGhosts consults both ghost histories for k and applies the
// one-slot capacity transfer. A key is demoted into exactly one ghost at a
// time, so at most one tracker can match. The grow side is applied even
// when the shrink side is floored at zero, matching the reference
// behavior.
func (c *Cache[K, V]) checkGhosts(k K) {
	if c.recency.checkGhost(k) {
		c.recency.increaseCapacity()
		c.frequency.decreaseCapacity()
		return
	}
	if c.frequency.checkGhost(k) {
		c.frequency.increaseCapacity()
		c.recency.decreaseCapacity()
	}
}

// Put inserts or overwrites k→v. After the ghost check the write always
// goes through the recency partition; promotion is Get's job.
func (c *Cache[K, V]) Put(k K, v V) {
	c.checkGhosts(k)
	c.recency.put(k, v)
}

// Get returns the value for k. A recency hit that crosses the transform
// threshold additionally writes the entry into the frequency partition; a
// recency miss falls through to the frequency partition.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.checkGhosts(k)

	if v, promote, ok := c.recency.get(k); ok {
		if promote {
			c.frequency.put(k, v)
		}
		c.hits.Add(1)
		return v, true
	}
	if v, ok := c.frequency.get(k); ok {
		c.hits.Add(1)
		return v, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// GetDefault returns the value for k, or the zero value on miss.
func (c *Cache[K, V]) GetDefault(k K) V {
	v, _ := c.Get(k)
	return v
}

// Len returns the number of resident entries summed over both partitions.
// An entry promoted to the frequency partition while still resident in
// recency counts in both.
func (c *Cache[K, V]) Len() int {
	return c.recency.len() + c.frequency.len()
}

// Stats returns a snapshot of the hit/miss/demotion tallies.
func (c *Cache[K, V]) Stats() policy.Stats {
	return policy.Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.recency.evicted() + c.frequency.evicted(),
	}
}

var _ policy.Policy[string, int] = (*Cache[string, int])(nil)
