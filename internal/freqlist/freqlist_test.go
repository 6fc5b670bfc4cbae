package freqlist

import (
	"testing"

	"github.com/polycache/polycache/internal/chain"
)

func TestAddTracksMin(t *testing.T) {
	l := New[string, int]()
	if l.Min() != 1 {
		t.Fatalf("empty ledger Min = %d, want 1", l.Min())
	}

	n := chain.NewNode("a", 1)
	n.Count = 3
	l.Add(n)
	if l.Min() != 3 {
		t.Fatalf("Min = %d, want 3", l.Min())
	}

	m := chain.NewNode("b", 2) // Count 1
	l.Add(m)
	if l.Min() != 1 {
		t.Fatalf("Min = %d, want 1 after lower insert", l.Min())
	}
}

func TestEvictMinFIFO(t *testing.T) {
	l := New[string, int]()
	a, b := chain.NewNode("a", 1), chain.NewNode("b", 2)
	l.Add(a)
	l.Add(b)

	hot := chain.NewNode("hot", 3)
	hot.Count = 5
	l.Add(hot)

	if v := l.EvictMin(); v != a {
		t.Fatalf("EvictMin = %v, want a (earliest arrival at min)", v)
	}
	if v := l.EvictMin(); v != b {
		t.Fatalf("EvictMin = %v, want b", v)
	}
	// Minimum bucket drained: the minimum advances to the remaining bucket.
	if l.Min() != 5 {
		t.Fatalf("Min = %d, want 5", l.Min())
	}
	if v := l.EvictMin(); v != hot {
		t.Fatalf("EvictMin = %v, want hot", v)
	}
	if v := l.EvictMin(); v != nil {
		t.Fatalf("EvictMin on empty = %v, want nil", v)
	}
	if l.Min() != 1 {
		t.Fatalf("empty ledger Min = %d, want 1", l.Min())
	}
}

func TestPromoteAdvancesMin(t *testing.T) {
	l := New[string, int]()
	a := chain.NewNode("a", 1)
	l.Add(a)

	l.Promote(a) // last entry at min 1 moves to 2
	if a.Count != 2 {
		t.Fatalf("Count = %d, want 2", a.Count)
	}
	if l.Min() != 2 {
		t.Fatalf("Min = %d, want 2", l.Min())
	}
}

func TestPromoteKeepsMinWhenBucketStaysPopulated(t *testing.T) {
	l := New[string, int]()
	a, b := chain.NewNode("a", 1), chain.NewNode("b", 2)
	l.Add(a)
	l.Add(b)

	l.Promote(a) // b still holds bucket 1
	if l.Min() != 1 {
		t.Fatalf("Min = %d, want 1", l.Min())
	}
	if v := l.EvictMin(); v != b {
		t.Fatalf("EvictMin = %v, want b", v)
	}
	if v := l.EvictMin(); v != a {
		t.Fatalf("EvictMin = %v, want a", v)
	}
}

func TestPromoteTieBreakOrder(t *testing.T) {
	l := New[string, int]()
	a, b, c := chain.NewNode("a", 1), chain.NewNode("b", 2), chain.NewNode("c", 3)
	l.Add(a)
	l.Add(b)
	l.Add(c)

	// All three promoted in b, c, a order: bucket 2 arrival order follows.
	l.Promote(b)
	l.Promote(c)
	l.Promote(a)

	want := []*chain.Node[string, int]{b, c, a}
	for _, w := range want {
		if v := l.EvictMin(); v != w {
			t.Fatalf("EvictMin = %v, want %v", v.Key, w.Key)
		}
	}
}

func TestRemoveThenRecomputeMin(t *testing.T) {
	l := New[string, int]()
	a := chain.NewNode("a", 1)
	hot := chain.NewNode("hot", 2)
	hot.Count = 7
	l.Add(a)
	l.Add(hot)

	l.Remove(a)
	l.RecomputeMin()
	if l.Min() != 7 {
		t.Fatalf("Min = %d, want 7", l.Min())
	}

	l.Remove(hot)
	l.RecomputeMin()
	if l.Min() != 1 {
		t.Fatalf("empty ledger Min = %d, want 1", l.Min())
	}
}
