package paperwave

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// ListingCache memoizes downstream search and listing responses that go stale
// whenever an ingestion task completes. A tracker configured with one flushes
// it on every success transition; hosts can share a single instance across
// their request handlers.
type ListingCache struct {
	c *cache.Cache
}

// NewListingCache creates a cache whose entries expire after ttl.
func NewListingCache(ttl time.Duration) *ListingCache {
	return &ListingCache{c: cache.New(ttl, 10*time.Minute)}
}

// Get returns the value cached under key when present and fresh.
func (l *ListingCache) Get(key string) (any, bool) {
	return l.c.Get(key)
}

// Set stores v under key with the cache's default expiration.
func (l *ListingCache) Set(key string, v any) {
	l.c.Set(key, v, cache.DefaultExpiration)
}

// Flush drops every entry.
func (l *ListingCache) Flush() {
	l.c.Flush()
}

// Len reports the number of stored entries, including any not yet swept.
func (l *ListingCache) Len() int {
	return l.c.ItemCount()
}
