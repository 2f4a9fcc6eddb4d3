// Package cache provides the in-process TTL cache for computed price
// comparisons.
package cache

import (
	"sync"
	"time"

	"tc.com/price-checker/pkg/metrics"
	"tc.com/price-checker/pkg/server/aggregator"
)

// DefaultTTL is the time-to-live applied to every entry.
const DefaultTTL = 600 * time.Second

type entry struct {
	payload *aggregator.PriceComparison
	expiry  time.Time
}

// Cache maps a normalized query key to a previously computed
// comparison. Entries expire lazily: an expired entry is removed on the
// lookup that finds it. There is no size bound and no background sweep.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a Cache with the given TTL. A non-positive TTL falls back
// to DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Lookup returns the cached comparison for the key, if present and not
// expired. An expired entry is treated as absent and removed.
func (c *Cache) Lookup(key string) (*aggregator.PriceComparison, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiry) {
		delete(c.entries, key)
		metrics.SetCacheEntries(len(c.entries))
		return nil, false
	}
	return e.payload, true
}

// Store writes the comparison under the key, replacing any existing
// entry. Concurrent writers to the same key race benignly; last write
// wins.
func (c *Cache) Store(key string, payload *aggregator.PriceComparison) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		payload: payload,
		expiry:  c.now().Add(c.ttl),
	}
	metrics.SetCacheEntries(len(c.entries))
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
