// Package cache provides a generic, sharded in-memory cache with
// interchangeable eviction engines behind one Put/Get contract.
//
// # Design
//
//   - Engines: policy/lru (plain LRU and LRU-K), policy/lfu
//     (frequency-bucketed with aging) and policy/arc (adaptive
//     recency/frequency with ghost histories) all implement
//     policy.Policy. Each instance owns one mutex guarding its map and
//     chains for the full duration of Put/Get.
//
//   - Sharding: New splits the keyspace across N engine instances by key
//     hash. Shards lock independently, so contention is limited to keys
//     hashing to the same shard. Capacity splits as ceil(total/N) per
//     shard; per-shard ordering is exact, global ordering is approximate.
//
//   - Errors: absence is a boolean, never an error. A full cache evicts
//     silently; zero capacity degrades Put to a no-op and Get to a miss;
//     a non-positive shard count takes a hardware-parallelism default.
//     Nothing in the core returns or panics on pathological input.
//
//   - GetOrLoad: coalesces concurrent loads for the same key via
//     singleflight. Returns ErrNoLoader if no Loader is configured.
//
//   - Stats: every engine tallies hits/misses/evictions under its own
//     lock; Stats() sums the snapshots. metrics/prom exports them as a
//     prometheus.Collector.
//
// # Basic usage
//
//	c := cache.New[string, []byte](cache.Options[string, []byte]{Capacity: 10_000})
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//
// # LFU shards
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 50_000,
//	    NewPolicy: func(capacity int) policy.Policy[string, string] {
//	        return lfu.New[string, string](capacity, 10)
//	    },
//	})
//
// # Standalone engines
//
// The engines are usable directly when sharding is not wanted:
//
//	l := lru.New[int, string](1024)
//	k := lru.NewK[int, string](1024, 4096, 2)
//	f := lfu.New[int, string](1024, 10)
//	a := arc.New[int, string](1024, 2)
//
// # With GetOrLoad (singleflight)
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 1024,
//	    Loader: func(ctx context.Context, k string) (string, error) {
//	        return "v:" + k, nil // e.g. fetch from DB
//	    },
//	})
//	v, err := c.GetOrLoad(context.Background(), "key")
package cache
