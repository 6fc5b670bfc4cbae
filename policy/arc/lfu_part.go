package arc

import (
	"sync"

	"github.com/polycache/polycache/internal/chain"
	"github.com/polycache/polycache/internal/freqlist"
)

// lfuPart is ARC's frequency partition: a frequency ledger without aging
// (ghost-driven rebalancing bounds staleness instead), demoting victims
// into its own key-only ghost list.
type lfuPart[K comparable, V any] struct {
	mu        sync.Mutex
	cap       int
	items     map[K]*chain.Node[K, V]
	freqs     *freqlist.Ledger[K, V]
	ghost     *ghostList[K]
	evictions uint64
}

func newLFUPart[K comparable, V any](capacity int) *lfuPart[K, V] {
	return &lfuPart[K, V]{
		cap:   capacity,
		items: make(map[K]*chain.Node[K, V]),
		freqs: freqlist.New[K, V](),
		ghost: newGhostList[K](capacity),
	}
}

// put inserts or overwrites k→v. Only promotion from the recency partition
// reaches this; overwriting moves the entry one frequency bucket up.
func (p *lfuPart[K, V]) put(k K, v V) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cap <= 0 {
		return
	}
	if n, ok := p.items[k]; ok {
		n.Val = v
		p.freqs.Promote(n)
		return
	}
	for len(p.items) >= p.cap {
		p.demoteColdest()
	}
	n := chain.NewNode(k, v)
	p.items[k] = n
	p.freqs.Add(n)
}

// get returns the value for k, bumping its frequency on a hit.
func (p *lfuPart[K, V]) get(k K) (V, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, ok := p.items[k]
	if !ok {
		var zero V
		return zero, false
	}
	v := n.Val
	p.freqs.Promote(n)
	return v, true
}

// checkGhost consumes a ghost entry for k if one exists.
func (p *lfuPart[K, V]) checkGhost(k K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ghost.remove(k)
}

func (p *lfuPart[K, V]) increaseCapacity() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cap++
}

// decreaseCapacity shrinks the partition by one, demoting the minimum-
// frequency victim if the partition is full. No-op reporting failure at
// capacity 0.
func (p *lfuPart[K, V]) decreaseCapacity() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cap <= 0 {
		return false
	}
	if len(p.items) >= p.cap {
		p.demoteColdest()
	}
	p.cap--
	return true
}

func (p *lfuPart[K, V]) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

func (p *lfuPart[K, V]) evicted() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.evictions
}

// demoteColdest moves the oldest minimum-frequency entry into the ghost
// list. mu held.
func (p *lfuPart[K, V]) demoteColdest() {
	n := p.freqs.EvictMin()
	if n == nil {
		return
	}
	delete(p.items, n.Key)
	p.ghost.add(n.Key)
	p.evictions++
}
