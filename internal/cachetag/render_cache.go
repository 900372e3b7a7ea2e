package cachetag

import "sync"

type renderEntry struct {
	value    any
	tags     []string
	checksum uint64
}

// RenderCache memoises rendered output. An entry stays valid only while the
// checksum of its tags on the backing MemoryBus is unchanged.
type RenderCache struct {
	bus     *MemoryBus
	mu      sync.Mutex
	entries map[string]renderEntry
}

// NewRenderCache creates a cache validated against bus.
func NewRenderCache(bus *MemoryBus) *RenderCache {
	return &RenderCache{bus: bus, entries: make(map[string]renderEntry)}
}

// Set stores value under key together with the tags it depends on.
func (c *RenderCache) Set(key string, value any, tags []string) {
	tags = Merge(tags)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = renderEntry{value: value, tags: tags, checksum: c.bus.Checksum(tags)}
}

// Get returns the cached value for key. Stale entries are evicted and
// reported as misses.
func (c *RenderCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.bus.Checksum(e.tags) != e.checksum {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}
