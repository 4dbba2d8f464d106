package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultDocumentTTL is the freshness window applied when a caller
// does not choose one. Published codes change by amendment, not by
// the hour, so entries stay live for a full day.
const DefaultDocumentTTL = 24 * time.Hour

// sweepInterval controls how often expired entries are purged.
// Cached codes are few and large, so an hourly sweep keeps memory
// bounded without a measurable scan cost.
const sweepInterval = time.Hour

// MemoryCache keeps fetched documents in memory with expiry.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache expiring entries after
// defaultTTL. Zero or negative falls back to DefaultDocumentTTL.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultDocumentTTL
	}
	return &MemoryCache{
		cache: gocache.New(defaultTTL, sweepInterval),
	}
}

// Get retrieves a document from the cache.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a document with the given TTL; zero uses the cache's
// default.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a document from the cache.
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes every cached document.
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
