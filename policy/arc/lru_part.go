package arc

import (
	"sync"

	"github.com/polycache/polycache/internal/chain"
)

// lruPart is ARC's recency partition: an LRU chain whose victims are
// demoted into a key-only ghost list instead of being discarded, so the
// composed cache can detect recency-favoring workloads. Capacity moves by
// one per ghost-hit decision; the ghost capacity stays at the nominal size.
type lruPart[K comparable, V any] struct {
	mu        sync.Mutex
	cap       int
	threshold uint64 // access count at which an entry is copied to the frequency partition
	items     map[K]*chain.Node[K, V]
	order     *chain.List[K, V]
	ghost     *ghostList[K]
	evictions uint64
}

func newLRUPart[K comparable, V any](capacity int, threshold uint64) *lruPart[K, V] {
	return &lruPart[K, V]{
		cap:       capacity,
		threshold: threshold,
		items:     make(map[K]*chain.Node[K, V]),
		order:     chain.New[K, V](),
		ghost:     newGhostList[K](capacity),
	}
}

// put inserts or overwrites k→v at the most-recently-used position.
// Overwriting counts as an access. At capacity the coldest entry is
// demoted to the ghost list first.
func (p *lruPart[K, V]) put(k K, v V) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cap <= 0 {
		return
	}
	if n, ok := p.items[k]; ok {
		n.Val = v
		n.Count++
		p.order.MoveToBack(n)
		return
	}
	for len(p.items) >= p.cap {
		p.demoteColdest()
	}
	n := chain.NewNode(k, v)
	p.items[k] = n
	p.order.PushBack(n)
}

// get returns the value for k, promoting the entry and bumping its access
// counter. promote reports that the counter has reached the transform
// threshold and the entry should additionally be written into the
// frequency partition.
func (p *lruPart[K, V]) get(k K) (v V, promote, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, found := p.items[k]
	if !found {
		return v, false, false
	}
	n.Count++
	p.order.MoveToBack(n)
	return n.Val, n.Count >= p.threshold, true
}

// checkGhost consumes a ghost entry for k if one exists.
func (p *lruPart[K, V]) checkGhost(k K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ghost.remove(k)
}

func (p *lruPart[K, V]) increaseCapacity() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cap++
}

// decreaseCapacity shrinks the partition by one, demoting an entry if the
// partition is full. At capacity 0 it is a no-op reporting failure, which
// stops unbounded shrink during rapid ghost oscillation.
func (p *lruPart[K, V]) decreaseCapacity() bool {
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

func (p *lruPart[K, V]) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

func (p *lruPart[K, V]) evicted() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.evictions
}

// demoteColdest moves the least-recently-used entry into the ghost list
// (value dropped, key retained). mu held.
func (p *lruPart[K, V]) demoteColdest() {
	n := p.order.PopFront()
	if n == nil {
		return
	}
	delete(p.items, n.Key)
	p.ghost.add(n.Key)
	p.evictions++
}
