package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory implements in-memory caching with TTL-based expiry
type Memory struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemory creates a new memory cache. Entries expire after defaultTTL and
// expired entries are swept every cleanupInterval.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{
		cache: gocache.New(defaultTTL, cleanupInterval),
		ttl:   defaultTTL,
	}
}

// Get retrieves a value from the cache
func (c *Memory) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

// Set stores a value with the default TTL
func (c *Memory) Set(key string, value any) {
	c.cache.Set(key, value, c.ttl)
}

// Delete removes a value from the cache
func (c *Memory) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all values from the cache
func (c *Memory) Clear() {
	c.cache.Flush()
}

// Nop is a cache that stores nothing. Used when caching is disabled.
type Nop struct{}

func (Nop) Get(string) (any, bool) { return nil, false }
func (Nop) Set(string, any)        {}
func (Nop) Delete(string)          {}
func (Nop) Clear()                 {}
