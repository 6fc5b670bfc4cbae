// Package chain implements the intrusive doubly linked entry chain shared by
// the eviction engines. A chain is bounded by two sentinel nodes; real
// entries live strictly between them, oldest adjacent to the head sentinel
// and newest adjacent to the tail sentinel. All operations are O(1).
package chain

// Node is a cache entry embedded directly in a chain. A node is owned by at
// most one chain (or one frequency bucket) at a time; the owning cache's
// key index holds the same pointer as a non-owning lookup handle.
//
// Count is the entry's access counter. It starts at 1 and is interpreted by
// the owning engine: LFU reads it as the frequency-bucket key, ARC's
// recency partition as the promotion counter, plain LRU ignores it.
type Node[K comparable, V any] struct {
	Key   K
	Val   V
	Count uint64

	prev, next *Node[K, V]
}

// NewNode returns a detached node with Count = 1.
func NewNode[K comparable, V any](k K, v V) *Node[K, V] {
	return &Node[K, V]{Key: k, Val: v, Count: 1}
}

// Linked reports whether n is currently attached to a chain.
func (n *Node[K, V]) Linked() bool { return n.prev != nil }

// List is a sentinel-bounded chain of nodes.
type List[K comparable, V any] struct {
	head, tail *Node[K, V] // sentinels; entries live between them
	size       int
}

// New returns an empty chain with its sentinels linked.
func New[K comparable, V any]() *List[K, V] {
	l := &List[K, V]{
		head: &Node[K, V]{},
		tail: &Node[K, V]{},
	}
	l.head.next = l.tail
	l.tail.prev = l.head
	return l
}

// Len returns the number of entries in the chain.
func (l *List[K, V]) Len() int { return l.size }

// Empty reports whether the chain holds no entries.
func (l *List[K, V]) Empty() bool { return l.size == 0 }

// Front returns the oldest entry (adjacent to head), or nil.
func (l *List[K, V]) Front() *Node[K, V] {
	if l.size == 0 {
		return nil
	}
	return l.head.next
}

// Back returns the newest entry (adjacent to tail), or nil.
func (l *List[K, V]) Back() *Node[K, V] {
	if l.size == 0 {
		return nil
	}
	return l.tail.prev
}

// PushBack links a detached node in front of the tail sentinel.
func (l *List[K, V]) PushBack(n *Node[K, V]) {
	n.prev = l.tail.prev
	n.next = l.tail
	l.tail.prev.next = n
	l.tail.prev = n
	l.size++
}

// Remove detaches n from the chain. The node is left fully unlinked so it
// can be pushed onto another chain (or dropped) without dangling pointers.
func (l *List[K, V]) Remove(n *Node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	l.size--
}

// MoveToBack re-links n as the newest entry.
func (l *List[K, V]) MoveToBack(n *Node[K, V]) {
	if l.tail.prev == n {
		return
	}
	l.Remove(n)
	l.PushBack(n)
}

// PopFront detaches and returns the oldest entry, or nil if the chain is
// empty.
func (l *List[K, V]) PopFront() *Node[K, V] {
	n := l.Front()
	if n != nil {
		l.Remove(n)
	}
	return n
}
