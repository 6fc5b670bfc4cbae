package util

import "runtime"

// ReasonableShardCount picks a practical default shard count from the
// host's parallelism: nextPow2(2*GOMAXPROCS), clamped to [1..256]. Resolved
// once at construction time, never re-read afterwards.
func ReasonableShardCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := int(NextPow2(uint64(p * 2)))
	if n > 256 {
		n = 256
	}
	return n
}

// ShardIndex maps a 64-bit key hash to a shard index. Power-of-two shard
// counts take the mask fast path; arbitrary counts fall back to modulo.
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	if IsPowerOfTwo(uint64(shards)) {
		return int(hash & uint64(shards-1))
	}
	return int(hash % uint64(shards))
}
