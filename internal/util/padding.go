package util

import (
	"sync/atomic"
	"unsafe"
)

// CacheLineSize is a reasonable default for current CPUs. The runtime's own
// constant is unexported; 64 works well in practice.
const CacheLineSize = 64

// PaddedAtomicUint64 is an atomic uint64 padded to exactly one cache line,
// for counters updated from many goroutines without false sharing.
type PaddedAtomicUint64 struct {
	atomic.Uint64
	_ [CacheLineSize - 8]byte
}

// Compile-time size check: must stay exactly one cache line.
var _ [CacheLineSize - int(unsafe.Sizeof(PaddedAtomicUint64{}))]byte
