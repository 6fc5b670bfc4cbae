// Package policy defines the contract every eviction engine implements.
// The concrete engines live in the subpackages lru, lfu and arc; the cache
// package shards any of them behind one interface.
package policy

// Policy is a bounded key/value store with a replacement policy. All
// methods are safe for concurrent use: an implementation guards its map,
// chains and counters with one per-instance lock held for the full duration
// of each call (ARC holds one lock per partition instead).
//
// Presence is reported through the boolean result, never through an error;
// a full cache resolves Put by silent eviction; a zero-capacity instance
// degrades Put to a no-op and Get to a permanent miss.
type Policy[K comparable, V any] interface {
	// Put inserts or overwrites k→v and marks the entry as used
	// according to the policy.
	Put(k K, v V)

	// Get returns the value for k and a presence flag. A hit promotes
	// the entry (reads mutate recency/frequency position by design).
	Get(k K) (V, bool)

	// GetDefault returns the value for k, or the zero value on miss.
	GetDefault(k K) V

	// Len returns the number of resident entries.
	Len() int

	// Stats returns a snapshot of the hit/miss/eviction tallies.
	Stats() Stats
}

// Stats is a point-in-time snapshot of an engine's counters. Engines
// update them under their own lock; aggregators sum snapshots.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Hits:      s.Hits + o.Hits,
		Misses:    s.Misses + o.Misses,
		Evictions: s.Evictions + o.Evictions,
	}
}

// HitRate returns hits/(hits+misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
