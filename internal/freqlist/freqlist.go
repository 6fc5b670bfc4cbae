// Package freqlist implements the frequency ledger used by the LFU engine
// and by ARC's frequency partition: an index from access frequency to the
// chain of entries currently at that frequency, plus the tracked minimum
// populated frequency for O(1) victim lookup.
package freqlist

import "github.com/polycache/polycache/internal/chain"

// Ledger maps a frequency (node.Count) to the chain of entries at that
// frequency. Within a bucket entries keep arrival order: new entries are
// pushed to the back, victims are taken from the front (FIFO tie-break).
//
// Ledger is not safe for concurrent use; the owning cache's lock guards it.
type Ledger[K comparable, V any] struct {
	buckets map[uint64]*chain.List[K, V]
	min     uint64 // smallest populated frequency; 1 when empty
}

// New returns an empty ledger.
func New[K comparable, V any]() *Ledger[K, V] {
	return &Ledger[K, V]{
		buckets: make(map[uint64]*chain.List[K, V]),
		min:     1,
	}
}

// Min returns the smallest populated frequency (1 if the ledger is empty).
func (l *Ledger[K, V]) Min() uint64 { return l.min }

// Add links n into the bucket for n.Count, creating the bucket on demand.
func (l *Ledger[K, V]) Add(n *chain.Node[K, V]) {
	b, ok := l.buckets[n.Count]
	if !ok {
		b = chain.New[K, V]()
		l.buckets[n.Count] = b
	}
	b.PushBack(n)
	if len(l.buckets) == 1 || n.Count < l.min {
		l.min = n.Count
	}
}

// Remove detaches n from its bucket and drops the bucket if it became
// empty. The tracked minimum is NOT adjusted here: callers that may remove
// the last entry at the minimum frequency follow up with RecomputeMin (or
// re-insert at frequency 1, which resets it through Add).
func (l *Ledger[K, V]) Remove(n *chain.Node[K, V]) {
	b, ok := l.buckets[n.Count]
	if !ok {
		return
	}
	b.Remove(n)
	if b.Empty() {
		delete(l.buckets, n.Count)
	}
}

// Promote moves n to the next frequency bucket, maintaining the minimum:
// if n was the last entry at the minimum frequency, the minimum advances to
// n's new frequency.
func (l *Ledger[K, V]) Promote(n *chain.Node[K, V]) {
	old := n.Count
	l.Remove(n)
	n.Count++
	if _, populated := l.buckets[old]; !populated && old == l.min {
		l.min = n.Count
	}
	l.Add(n)
}

// EvictMin detaches and returns the oldest entry of the minimum-frequency
// bucket, or nil if the ledger is empty. If the bucket emptied, the minimum
// is recomputed from the remaining buckets.
func (l *Ledger[K, V]) EvictMin() *chain.Node[K, V] {
	b, ok := l.buckets[l.min]
	if !ok {
		return nil
	}
	n := b.PopFront()
	if b.Empty() {
		delete(l.buckets, l.min)
		l.RecomputeMin()
	}
	return n
}

// RecomputeMin scans the populated buckets for the smallest frequency.
// Used after bulk relocation (LFU aging) and after draining the minimum
// bucket. An empty ledger resets the minimum to 1.
func (l *Ledger[K, V]) RecomputeMin() {
	if len(l.buckets) == 0 {
		l.min = 1
		return
	}
	first := true
	for f := range l.buckets {
		if first || f < l.min {
			l.min = f
			first = false
		}
	}
}
