package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pagesift/pagesift"
)

// Compile-time interface verification.
var _ pagesift.CacheService = (*CacheService)(nil)

// CacheService implements pagesift.CacheService using SQLite.
type CacheService struct {
	db *DB
}

// NewCacheService creates a new CacheService.
func NewCacheService(db *DB) *CacheService {
	return &CacheService{db: db}
}

// GetEntry retrieves the entry for a key/format pair that is no older
// than maxAge.
func (s *CacheService) GetEntry(ctx context.Context, key, format string, maxAge time.Duration) (*pagesift.CacheEntry, error) {
	var entry pagesift.CacheEntry
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, key, format, output, created_at
		FROM cache_entries
		WHERE key = ? AND format = ?
	`, key, format).Scan(&entry.ID, &entry.Key, &entry.Format, &entry.Output, &createdAt)

	if err == sql.ErrNoRows {
		return nil, pagesift.Errorf(pagesift.ENOTFOUND, "cache entry not found")
	}
	if err != nil {
		return nil, err
	}

	entry.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINTERNAL, "corrupt created_at: %v", err)
	}

	if maxAge > 0 && time.Since(entry.CreatedAt) > maxAge {
		return nil, pagesift.Errorf(pagesift.ENOTFOUND, "cache entry expired")
	}
	return &entry, nil
}

// PutEntry stores an entry, replacing any previous entry for the same
// key/format pair.
func (s *CacheService) PutEntry(ctx context.Context, entry *pagesift.CacheEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (id, key, format, output, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (key, format) DO UPDATE SET
			id = excluded.id,
			output = excluded.output,
			created_at = excluded.created_at
	`, entry.ID, entry.Key, entry.Format, entry.Output, entry.CreatedAt.Format(time.RFC3339))

	return err
}

// PurgeExpired removes entries older than maxAge and reports how many
// were removed.
func (s *CacheService) PurgeExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-maxAge).Format(time.RFC3339)

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM cache_entries WHERE created_at < ?
	`, cutoff)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
