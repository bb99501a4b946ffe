package discovery

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process Cache. Suitable for single-instance deploys
// and tests; multi-instance deploys share discoveries through Redis instead.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]memoryEntry{}}
}

func (c *MemoryCache) Get(_ context.Context, key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return Entry{}, false
	}
	return e.entry, true
}

func (c *MemoryCache) Put(_ context.Context, key string, e Entry, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{entry: e, expiresAt: time.Now().Add(ttl)}
}
