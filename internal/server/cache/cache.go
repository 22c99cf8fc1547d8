// Package cache provides the in-memory query result cache for the HTTP server.
// Entries expire after a TTL and the whole cache is flushed on catalog reload.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/snipdeck/pkg/query"
)

// Cache wraps go-cache with hit and miss accounting. Every Clear starts a
// new generation; SetIfCurrent refuses values computed in an older one.
type Cache struct {
	store  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64

	mu  sync.RWMutex
	gen uint64
}

// New creates a new cache with the given TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// QueryKey returns the cache key for a snippet query.
func QueryKey(f query.Filter) string {
	return "snippets?" + f.String()
}

// SnippetKey returns the cache key for a single snippet lookup.
func SnippetKey(id string) string {
	return "snippet:" + id
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.store.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores a value in the cache with default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// Generation returns the current generation. Read it before computing a
// value that will be stored with SetIfCurrent.
func (c *Cache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// SetIfCurrent stores value only if no Clear happened since gen was read,
// and reports whether it did.
func (c *Cache) SetIfCurrent(key string, value any, gen uint64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.gen != gen {
		return false
	}
	c.store.Set(key, value, gocache.DefaultExpiration)
	return true
}

// SetWithTTL stores a value in the cache with custom TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache and starts a new generation.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.store.Flush()
}

// ItemCount returns the number of items in the cache.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// Stats reports cache usage.
type Stats struct {
	ItemCount int   `json:"item_count"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	return Stats{
		ItemCount: c.store.ItemCount(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
	}
}
