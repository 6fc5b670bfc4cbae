package cache

import (
	"context"

	"github.com/polycache/polycache/policy"
)

// Options configures the sharded cache. Zero values are safe; defaults are
// applied in New:
//   - NewPolicy nil  => LRU shards
//   - Shards <= 0    => hardware-parallelism heuristic, resolved once at
//     construction
//   - Capacity <= 0  => Put degrades to a no-op, Get to a permanent miss
type Options[K comparable, V any] struct {
	// Capacity is the nominal total entry bound. Each shard is built
	// with ceil(Capacity/Shards) slots, so the aggregate bound may
	// exceed Capacity by up to Shards-1 entries when the split is
	// uneven. Per-shard ordering is exact; global ordering is the
	// accepted sharding approximation.
	Capacity int

	// Shards is the number of independently locked policy instances.
	Shards int

	// NewPolicy builds one shard's eviction engine with the given
	// per-shard capacity. Use it to select LFU shards (or any custom
	// engine); nil builds LRU shards.
	NewPolicy func(capacity int) policy.Policy[K, V]

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)
}
