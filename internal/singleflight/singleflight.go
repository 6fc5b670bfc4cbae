// Package singleflight coalesces concurrent loads for the same key so the
// load function runs at most once per in-flight key.
package singleflight

import (
	"context"
	"sync"
)

// Group deduplicates concurrent Do calls per key. The first caller for a
// key becomes the leader and runs fn; followers block until the leader
// publishes its result. Publishing happens-before close(done), so followers
// reading after <-done observe the final values.
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*flight[V]
}

type flight[V any] struct {
	done chan struct{} // closed once val/err are set
	val  V
	err  error
}

// Do runs fn at most once for key among concurrent callers and returns the
// shared result. A follower whose ctx is cancelled unblocks with ctx.Err();
// the leader's fn is NOT cancelled — thread ctx into fn if the underlying
// work must observe cancellation.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (V, error) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*flight[V])
	}
	if f, ok := g.m[key]; ok {
		g.mu.Unlock()
		select {
		case <-f.done:
			return f.val, f.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}
	f := &flight[V]{done: make(chan struct{})}
	g.m[key] = f
	g.mu.Unlock()

	f.val, f.err = fn()
	close(f.done)

	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()

	return f.val, f.err
}
