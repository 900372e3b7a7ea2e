package cachetag

import (
	"context"
	"sync"

	"github.com/specialistvlad/blockplace/internal/ctxlog"
)

// MemoryBus is an in-process Bus. It keeps an invalidation counter per tag;
// the checksum of a tag set is the sum of its counters, so any invalidation
// of any member changes the checksum.
type MemoryBus struct {
	mu       sync.RWMutex
	counters map[string]uint64
	history  [][]string
}

// NewMemoryBus creates an empty MemoryBus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{counters: make(map[string]uint64)}
}

// Invalidate implements Bus. Each call is recorded once in the history,
// with its tags merged.
func (b *MemoryBus) Invalidate(ctx context.Context, tags ...string) {
	tags = Merge(tags)
	if len(tags) == 0 {
		return
	}
	ctxlog.FromContext(ctx).Debug("Invalidating cache tags.", "tags", tags)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, tag := range tags {
		b.counters[tag]++
	}
	b.history = append(b.history, tags)
}

// Checksum returns the current checksum of a tag set.
func (b *MemoryBus) Checksum(tags []string) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var sum uint64
	for _, tag := range Merge(tags) {
		sum += b.counters[tag]
	}
	return sum
}

// Invalidations returns a copy of every Invalidate call seen so far.
func (b *MemoryBus) Invalidations() [][]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([][]string, len(b.history))
	for i, tags := range b.history {
		out[i] = append([]string(nil), tags...)
	}
	return out
}

// Reset clears the history but keeps the counters.
func (b *MemoryBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = nil
}
