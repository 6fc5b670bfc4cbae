// Package lfu implements the least-frequently-used eviction engine:
// frequency-bucketed ordering with FIFO tie-break inside a bucket and
// periodic aging that bounds the staleness of long-cold hot keys.
package lfu

import (
	"sync"

	"github.com/polycache/polycache/internal/chain"
	"github.com/polycache/polycache/internal/freqlist"
	"github.com/polycache/polycache/policy"
)

// DefaultMaxAverageFrequency is the aging ceiling used when the caller
// passes a non-positive one.
const DefaultMaxAverageFrequency = 10

// Cache is a capacity-bounded LFU store: a key index over a frequency
// ledger. Eviction takes the oldest entry of the minimum-frequency bucket.
// Safe for concurrent use; one mutex guards all state.
//
// Aging: every access (insertions included) feeds a running total. When
// total/len exceeds maxAvg, every entry's frequency is cut by maxAvg/2
// (floored at 1) and relocated, so entries that were hot long ago cannot
// permanently outrank currently-hot keys.
type Cache[K comparable, V any] struct {
	mu     sync.Mutex
	cap    int
	maxAvg uint64
	total  uint64 // running access total driving the aging trigger
	items  map[K]*chain.Node[K, V]
	freqs  *freqlist.Ledger[K, V]
	stats  policy.Stats
}

// New returns an LFU cache holding at most capacity entries.
// maxAverageFrequency is the aging ceiling; non-positive selects
// DefaultMaxAverageFrequency. A non-positive capacity yields a cache on
// which Put is a no-op and Get always misses.
func New[K comparable, V any](capacity, maxAverageFrequency int) *Cache[K, V] {
	if maxAverageFrequency <= 0 {
		maxAverageFrequency = DefaultMaxAverageFrequency
	}
	return &Cache[K, V]{
		cap:    capacity,
		maxAvg: uint64(maxAverageFrequency),
		items:  make(map[K]*chain.Node[K, V]),
		freqs:  freqlist.New[K, V](),
	}
}

// Put inserts or overwrites k→v. Overwriting counts as an access and moves
// the entry one frequency bucket up. A new key at capacity first evicts
// the oldest minimum-frequency entry, then enters at frequency 1.
func (c *Cache[K, V]) Put(k K, v V) {
	if c.cap <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.items[k]; ok {
		n.Val = v
		c.freqs.Promote(n)
		c.recordAccess()
		return
	}
	for len(c.items) >= c.cap {
		c.evictColdest()
	}
	n := chain.NewNode(k, v) // enters at frequency 1; ledger minimum resets to 1
	c.items[k] = n
	c.freqs.Add(n)
	c.recordAccess()
}

// Get returns the value for k, bumping its frequency on a hit. A miss has
// no side effects.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.items[k]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	v := n.Val
	c.freqs.Promote(n)
	c.recordAccess()
	c.stats.Hits++
	return v, true
}

// GetDefault returns the value for k, or the zero value on miss.
func (c *Cache[K, V]) GetDefault(k K) V {
	v, _ := c.Get(k)
	return v
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

// evictColdest drops the oldest entry of the minimum-frequency bucket and
// deducts its accumulated accesses from the running total. mu held.
func (c *Cache[K, V]) evictColdest() {
	n := c.freqs.EvictMin()
	if n == nil {
		return
	}
	delete(c.items, n.Key)
	c.total -= n.Count
	c.stats.Evictions++
}

// recordAccess bumps the running total and runs an aging sweep once the
// average frequency crosses the ceiling. mu held.
func (c *Cache[K, V]) recordAccess() {
	c.total++
	if len(c.items) == 0 {
		return
	}
	if c.total/uint64(len(c.items)) > c.maxAvg {
		c.age()
	}
}

// age cuts every entry's frequency by maxAvg/2 (floored at 1), relocates
// it to its new bucket and recomputes the ledger minimum. The running
// total is rebuilt from the adjusted frequencies so the sweep fires
// periodically rather than on every access after the first trigger.
// mu held; O(n), amortized across the accesses that grew the total.
func (c *Cache[K, V]) age() {
	cut := c.maxAvg / 2
	var total uint64
	for _, n := range c.items {
		c.freqs.Remove(n)
		if n.Count > cut {
			n.Count -= cut
		} else {
			n.Count = 1
		}
		c.freqs.Add(n)
		total += n.Count
	}
	c.freqs.RecomputeMin()
	c.total = total
}

var _ policy.Policy[string, int] = (*Cache[string, int])(nil)
