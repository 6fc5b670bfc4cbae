package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/polycache/polycache/policy"
	"github.com/polycache/polycache/policy/lfu"
)

// Basic Put/Get/GetDefault semantics.
func TestCache_BasicPutGet(t *testing.T) {
	t.Parallel()

	c := New[string, int](Options[string, int]{Capacity: 8})

	c.Put("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get a want 1, got %v ok=%v", v, ok)
	}

	c.Put("a", 11)
	if v, ok := c.Get("a"); !ok || v != 11 {
		t.Fatalf("Get a want 11, got %v ok=%v", v, ok)
	}

	if _, ok := c.Get("absent"); ok {
		t.Fatal("absent key must miss")
	}
	if v := c.GetDefault("absent"); v != 0 {
		t.Fatalf("GetDefault on miss want 0, got %v", v)
	}
}

// Deterministic LRU eviction: single shard, small capacity.
// Accessing "a" promotes it; inserting "c" evicts LRU ("b").
func TestCache_EvictionLRU(t *testing.T) {
	t.Parallel()

	c := New[string, int](Options[string, int]{
		Capacity: 2,
		Shards:   1, // force a single shard so LRU order is global
	})

	c.Put("a", 1) // LRU = a
	c.Put("b", 2) // MRU = b

	if _, ok := c.Get("a"); !ok { // promote a -> MRU
		t.Fatal("expect hit for a")
	}
	c.Put("c", 3) // overflow -> evict LRU (b)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b must be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a must survive (promoted)")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Fatal("c must be present")
	}
}

// NewPolicy swaps the per-shard engine: LFU shards keep the hot key over a
// colder, more recent one.
func TestCache_LFUShards(t *testing.T) {
	t.Parallel()

	c := New[string, int](Options[string, int]{
		Capacity: 2,
		Shards:   1,
		NewPolicy: func(capacity int) policy.Policy[string, int] {
			return lfu.New[string, int](capacity, 100)
		},
	})

	c.Put("hot", 1)
	c.Put("cold", 2)
	c.Get("hot")
	c.Get("hot")

	c.Put("new", 3) // LFU victim is cold, not the older hot

	if _, ok := c.Get("hot"); !ok {
		t.Fatal("hot must survive under LFU shards")
	}
	if _, ok := c.Get("cold"); ok {
		t.Fatal("cold must be the LFU victim")
	}
}

// Routing is deterministic: a key written through one handle is readable
// through any sequence of operations on the same cache instance.
func TestCache_ShardRoutingStable(t *testing.T) {
	t.Parallel()

	c := New[string, string](Options[string, string]{Capacity: 1024, Shards: 16})

	const n = 500
	for i := 0; i < n; i++ {
		k := "k:" + strconv.Itoa(i)
		c.Put(k, "v:"+strconv.Itoa(i))
	}
	for i := 0; i < n; i++ {
		k := "k:" + strconv.Itoa(i)
		if v, ok := c.Get(k); !ok || v != "v:"+strconv.Itoa(i) {
			t.Fatalf("Get %q = %q ok=%v", k, v, ok)
		}
	}
	if got := c.Len(); got != n {
		t.Fatalf("Len = %d, want %d", got, n)
	}
}

// Zero capacity never crashes: Put is a no-op, Get a permanent miss.
func TestCache_ZeroCapacity(t *testing.T) {
	t.Parallel()

	c := New[string, int](Options[string, int]{Shards: 4})
	c.Put("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Fatal("zero-capacity cache must not retain entries")
	}
	if c.Len() != 0 {
		t.Fatalf("Len = %d, want 0", c.Len())
	}
}

// Stats aggregates across shards.
func TestCache_StatsAggregation(t *testing.T) {
	t.Parallel()

	c := New[string, int](Options[string, int]{Capacity: 256, Shards: 8})
	for i := 0; i < 32; i++ {
		c.Put("k:"+strconv.Itoa(i), i)
	}
	for i := 0; i < 32; i++ {
		c.Get("k:" + strconv.Itoa(i))
	}
	c.Get("missing")

	s := c.Stats()
	if s.Hits != 32 {
		t.Fatalf("Hits = %d, want 32", s.Hits)
	}
	if s.Misses != 1 {
		t.Fatalf("Misses = %d, want 1", s.Misses)
	}
	if got := s.HitRate(); got <= 0.9 {
		t.Fatalf("HitRate = %f, want > 0.9", got)
	}
}

// Singleflight test: concurrent GetOrLoad calls for the same key should
// trigger the Loader at most once; subsequent calls are cache hits.
func TestCache_GetOrLoad_Singleflight(t *testing.T) {
	var calls int64

	c := New[string, string](Options[string, string]{
		Capacity: 64,
		Loader: func(_ context.Context, k string) (string, error) {
			atomic.AddInt64(&calls, 1)
			time.Sleep(5 * time.Millisecond) // simulate I/O
			return "v:" + k, nil
		},
	})

	const N = 64
	var g errgroup.Group
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < N; i++ {
		g.Go(func() error {
			v, err := c.GetOrLoad(ctx, "k")
			if err != nil {
				return err
			}
			if v != "v:k" {
				return fmt.Errorf("got %q", v)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Fatalf("loader must run exactly once, got %d", got)
	}

	if v, err := c.GetOrLoad(context.Background(), "k"); err != nil || v != "v:k" {
		t.Fatalf("second GetOrLoad failed: v=%q err=%v", v, err)
	}
}

// GetOrLoad without a Loader reports ErrNoLoader on miss but still serves
// resident keys.
func TestCache_GetOrLoad_NoLoader(t *testing.T) {
	t.Parallel()

	c := New[string, string](Options[string, string]{Capacity: 8})
	c.Put("present", "v")

	if v, err := c.GetOrLoad(context.Background(), "present"); err != nil || v != "v" {
		t.Fatalf("resident key: v=%q err=%v", v, err)
	}
	if _, err := c.GetOrLoad(context.Background(), "absent"); err != ErrNoLoader {
		t.Fatalf("err = %v, want ErrNoLoader", err)
	}
}

// Loader errors are propagated and nothing is cached.
func TestCache_GetOrLoad_LoaderError(t *testing.T) {
	t.Parallel()

	wantErr := fmt.Errorf("backend down")
	c := New[string, string](Options[string, string]{
		Capacity: 8,
		Loader: func(_ context.Context, k string) (string, error) {
			return "", wantErr
		},
	})

	if _, err := c.GetOrLoad(context.Background(), "k"); err != wantErr {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if _, ok := c.Get("k"); ok {
		t.Fatal("failed load must not populate the cache")
	}
}
