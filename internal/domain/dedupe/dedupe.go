// Package dedupe tracks keys that may be claimed at most once.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records claimed keys so the same reserve game is never credited twice.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Size returns the number of recorded keys.
	Size() int
}

type inMemoryDeduper struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an empty in-memory deduper.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{seen: make(map[string]struct{})}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.seen)
}
