package cache

import (
	"context"
	"errors"

	"github.com/polycache/polycache/internal/singleflight"
	"github.com/polycache/polycache/internal/util"
	"github.com/polycache/polycache/policy"
	"github.com/polycache/polycache/policy/lru"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured.
var ErrNoLoader = errors.New("cache: no Loader provided")

// sharded partitions the keyspace across independent policy instances by
// key hash. It adds no lock of its own: distinct shards never contend, and
// a key only contends with keys hashing to the same shard.
type sharded[K comparable, V any] struct {
	shards []policy.Policy[K, V]
	loader func(ctx context.Context, k K) (V, error)

	// singleflight group coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]
}

// New constructs a sharded cache from the provided Options. See Options
// for the defaulting rules; no configuration makes New panic.
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	n := opt.Shards
	if n <= 0 {
		n = util.ReasonableShardCount()
	}
	newPolicy := opt.NewPolicy
	if newPolicy == nil {
		newPolicy = func(capacity int) policy.Policy[K, V] {
			return lru.New[K, V](capacity)
		}
	}

	perShard := 0
	if opt.Capacity > 0 {
		perShard = (opt.Capacity + n - 1) / n // ceil split
	}
	shards := make([]policy.Policy[K, V], n)
	for i := range shards {
		shards[i] = newPolicy(perShard)
	}
	return &sharded[K, V]{
		shards: shards,
		loader: opt.Loader,
	}
}

func (c *sharded[K, V]) Put(k K, v V) {
	c.shard(k).Put(k, v)
}

func (c *sharded[K, V]) Get(k K) (V, bool) {
	return c.shard(k).Get(k)
}

func (c *sharded[K, V]) GetDefault(k K) V {
	return c.shard(k).GetDefault(k)
}

// GetOrLoad returns the value for k; on miss it loads via the configured
// Loader, coalescing concurrent loads for the same key.
func (c *sharded[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.loader == nil {
		var zero V
		return zero, ErrNoLoader
	}
	return c.sf.Do(ctx, k, func() (V, error) {
		// Re-check after winning the flight: a concurrent Put or an
		// earlier leader may have filled the slot.
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.loader(ctx, k)
		if err == nil {
			c.Put(k, v)
		}
		return v, err
	})
}

func (c *sharded[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

func (c *sharded[K, V]) Stats() policy.Stats {
	var agg policy.Stats
	for _, s := range c.shards {
		agg = agg.Add(s.Stats())
	}
	return agg
}

// shard routes k to its policy instance. Shard count is fixed at
// construction, so routing is deterministic for the process lifetime.
func (c *sharded[K, V]) shard(k K) policy.Policy[K, V] {
	return c.shards[util.ShardIndex(util.KeyHash(k), len(c.shards))]
}
