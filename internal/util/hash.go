// Package util contains internal helpers (hashing, sharding, padding).
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import "hash/maphash"

// mapSeed is fixed at process start so routing stays deterministic for the
// lifetime of the process.
var mapSeed = maphash.MakeSeed()

// KeyHash hashes a comparable key to 64 bits for shard routing.
// Common key shapes (strings and the integer widths) take a 64-bit FNV-1a
// fast path; everything else comparable goes through hash/maphash, so no
// key type is ever rejected.
func KeyHash[K comparable](k K) uint64 {
	switch v := any(k).(type) {
	case string:
		return fnv64aString(v)
	case uint64:
		return fnv64aUint64(v)
	case uint32:
		return fnv64aUint64(uint64(v))
	case uint:
		return fnv64aUint64(uint64(v))
	case uintptr:
		return fnv64aUint64(uint64(v))
	case int64:
		return fnv64aUint64(uint64(v))
	case int32:
		return fnv64aUint64(uint64(uint32(v)))
	case int:
		return fnv64aUint64(uint64(v))
	default:
		return maphash.Comparable(mapSeed, k)
	}
}

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

func fnv64aString(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

// fnv64aUint64 hashes the 8 little-endian bytes of u without allocating.
func fnv64aUint64(u uint64) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < 8; i++ {
		h ^= uint64(byte(u))
		h *= fnvPrime64
		u >>= 8
	}
	return h
}
