// Package inflight tracks submissions that are currently being processed so
// a duplicate of the same entry cannot run concurrently.
package inflight

import (
	"context"
	"sync"
	"sync/atomic"
)

// Guard serializes work per key. Begin acquires the key; a second Begin for
// the same key fails until End releases it.
type Guard interface {
	// Begin atomically marks key as in flight. Returns false if the key is
	// already being processed.
	Begin(ctx context.Context, key string) bool

	// End releases key, allowing a new submission for it.
	End(ctx context.Context, key string)

	// Size returns the number of keys currently in flight.
	Size() int64
}

// inMemoryGuard implements Guard with a mutex-protected set. Submissions are
// short-lived, so the set stays small and needs no eviction.
type inMemoryGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
	size   atomic.Int64
}

// NewInMemoryGuard creates an empty guard.
func NewInMemoryGuard() Guard {
	return &inMemoryGuard{active: make(map[string]struct{})}
}

func (g *inMemoryGuard) Begin(_ context.Context, key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.active[key]; exists {
		return false
	}
	g.active[key] = struct{}{}
	g.size.Add(1)
	return true
}

func (g *inMemoryGuard) End(_ context.Context, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.active[key]; exists {
		delete(g.active, key)
		g.size.Add(-1)
	}
}

func (g *inMemoryGuard) Size() int64 {
	return g.size.Load()
}
