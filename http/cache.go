package http

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pagesift/pagesift"
)

// DefaultMaxCacheEntries bounds the in-memory cache size.
const DefaultMaxCacheEntries = 1000

// Ensure MemoryCache implements pagesift.CacheService at compile time.
var _ pagesift.CacheService = (*MemoryCache)(nil)

// MemoryCache is an in-process implementation of pagesift.CacheService.
// When full it evicts the oldest entries by insertion order.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*pagesift.CacheEntry
	order   []string // insertion order for eviction
	max     int
}

// NewMemoryCache creates a MemoryCache holding at most max entries.
// A non-positive max selects DefaultMaxCacheEntries.
func NewMemoryCache(max int) *MemoryCache {
	if max <= 0 {
		max = DefaultMaxCacheEntries
	}
	return &MemoryCache{
		entries: make(map[string]*pagesift.CacheEntry),
		max:     max,
	}
}

func cacheID(key, format string) string {
	return key + "\x00" + format
}

// GetEntry retrieves the entry for a key/format pair that is no older
// than maxAge.
func (c *MemoryCache) GetEntry(_ context.Context, key, format string, maxAge time.Duration) (*pagesift.CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[cacheID(key, format)]
	c.mu.RUnlock()

	if !ok {
		return nil, pagesift.Errorf(pagesift.ENOTFOUND, "cache entry not found")
	}
	if maxAge > 0 && time.Since(entry.CreatedAt) > maxAge {
		return nil, pagesift.Errorf(pagesift.ENOTFOUND, "cache entry expired")
	}

	// Callers get their own copy; the stored entry must stay untouched.
	out := *entry
	out.Output = bytes.Clone(entry.Output)
	return &out, nil
}

// PutEntry stores an entry, evicting the oldest one if the cache is full.
func (c *MemoryCache) PutEntry(_ context.Context, entry *pagesift.CacheEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	stored := *entry
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()

	id := cacheID(entry.Key, entry.Format)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[id]; !exists {
		if len(c.order) >= c.max {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, id)
	}
	c.entries[id] = &stored

	entry.ID = stored.ID
	entry.CreatedAt = stored.CreatedAt
	return nil
}

// PurgeExpired removes entries older than maxAge.
func (c *MemoryCache) PurgeExpired(_ context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)

	c.mu.Lock()
	defer c.mu.Unlock()

	var kept []string
	removed := 0
	for _, id := range c.order {
		if e := c.entries[id]; e != nil && e.CreatedAt.Before(cutoff) {
			delete(c.entries, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	c.order = kept
	return removed, nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
