package arc

import "github.com/polycache/polycache/internal/chain"

// ghostList is a bounded, key-only FIFO of recently evicted keys. A key
// enters when its entry is demoted out of the owning partition, and leaves
// either on FIFO overflow (oldest dropped silently) or when it resurfaces
// in a lookup (ghost hit). Not safe for concurrent use on its own; the
// owning partition's lock guards it.
type ghostList[K comparable] struct {
	cap  int
	idx  map[K]*chain.Node[K, struct{}]
	fifo *chain.List[K, struct{}]
}

func newGhostList[K comparable](capacity int) *ghostList[K] {
	return &ghostList[K]{
		cap:  capacity,
		idx:  make(map[K]*chain.Node[K, struct{}]),
		fifo: chain.New[K, struct{}](),
	}
}

// add records k as the most recent demotion, dropping the oldest ghost if
// the FIFO is full.
func (g *ghostList[K]) add(k K) {
	if g.cap <= 0 {
		return
	}
	if n, ok := g.idx[k]; ok {
		g.fifo.MoveToBack(n)
		return
	}
	if g.fifo.Len() >= g.cap {
		if old := g.fifo.PopFront(); old != nil {
			delete(g.idx, old.Key)
		}
	}
	n := chain.NewNode(k, struct{}{})
	g.idx[k] = n
	g.fifo.PushBack(n)
}

// remove deletes k and reports whether it was tracked (a ghost hit).
func (g *ghostList[K]) remove(k K) bool {
	n, ok := g.idx[k]
	if !ok {
		return false
	}
	g.fifo.Remove(n)
	delete(g.idx, k)
	return true
}

func (g *ghostList[K]) len() int { return g.fifo.Len() }
