package cache

import (
	"context"

	"github.com/polycache/polycache/policy"
)

// Cache is the sharded front over N independent eviction-policy instances.
// All methods are safe for concurrent use by multiple goroutines.
//
// Typical operation cost is amortized O(1): one hash, one map access and a
// constant number of pointer fixes under a single shard's lock.
type Cache[K comparable, V any] interface {
	// Put inserts or overwrites k→v in the shard k hashes to. It never
	// fails; a zero-capacity cache makes it a no-op.
	Put(k K, v V)

	// Get returns the value for k and a presence flag. A hit promotes
	// the entry according to the shard's policy.
	Get(k K) (V, bool)

	// GetDefault returns the value for k, or the zero value on miss.
	GetDefault(k K) V

	// GetOrLoad returns the value for k, loading it via Options.Loader
	// on miss. Concurrent loads for the same key are coalesced.
	// Returns ErrNoLoader if no Loader was configured.
	GetOrLoad(ctx context.Context, k K) (V, error)

	// Len returns the total number of resident entries across shards.
	Len() int

	// Stats returns the hit/miss/eviction tallies summed across shards.
	Stats() policy.Stats
}
