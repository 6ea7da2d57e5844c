package pagesift

import (
	"context"
	"time"
)

// Output formats stored in the conversion cache.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// CacheEntry represents a cached conversion result, keyed by a hash of the
// source content plus the output format.
type CacheEntry struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Format    string    `json:"format"`
	Output    []byte    `json:"output"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *CacheEntry) Validate() error {
	if e.Key == "" {
		return Errorf(EINVALID, "cache entry key required")
	}
	if e.Format != FormatHTML && e.Format != FormatMarkdown {
		return Errorf(EINVALID, "unknown cache entry format %q", e.Format)
	}
	return nil
}

// CacheService stores and retrieves conversion results.
type CacheService interface {
	// GetEntry retrieves the entry for a key/format pair that is no older
	// than maxAge. Returns ENOTFOUND if no fresh entry exists.
	GetEntry(ctx context.Context, key, format string, maxAge time.Duration) (*CacheEntry, error)

	// PutEntry stores an entry, replacing any previous entry for the same
	// key/format pair.
	PutEntry(ctx context.Context, entry *CacheEntry) error

	// PurgeExpired removes entries older than maxAge and reports how many
	// were removed.
	PurgeExpired(ctx context.Context, maxAge time.Duration) (int, error)
}
