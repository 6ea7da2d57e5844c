package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustOpenDB returns an open in-memory database, closed on test cleanup.
func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestCacheService_PutGet(t *testing.T) {
	t.Parallel()

	s := sqlite.NewCacheService(mustOpenDB(t))
	ctx := context.Background()

	entry := &pagesift.CacheEntry{
		Key:    "abc123",
		Format: pagesift.FormatHTML,
		Output: []byte("<main>content</main>"),
	}
	require.NoError(t, s.PutEntry(ctx, entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	got, err := s.GetEntry(ctx, "abc123", pagesift.FormatHTML, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, []byte("<main>content</main>"), got.Output)
}

func TestCacheService_GetMissing(t *testing.T) {
	t.Parallel()

	s := sqlite.NewCacheService(mustOpenDB(t))

	_, err := s.GetEntry(context.Background(), "nope", pagesift.FormatHTML, time.Hour)

	require.Error(t, err)
	assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
}

func TestCacheService_FormatsAreDistinct(t *testing.T) {
	t.Parallel()

	s := sqlite.NewCacheService(mustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, s.PutEntry(ctx, &pagesift.CacheEntry{
		Key:    "abc123",
		Format: pagesift.FormatHTML,
		Output: []byte("<main>m</main>"),
	}))

	_, err := s.GetEntry(ctx, "abc123", pagesift.FormatMarkdown, time.Hour)

	require.Error(t, err)
	assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
}

func TestCacheService_PutReplaces(t *testing.T) {
	t.Parallel()

	s := sqlite.NewCacheService(mustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, s.PutEntry(ctx, &pagesift.CacheEntry{
		Key:    "abc123",
		Format: pagesift.FormatHTML,
		Output: []byte("old"),
	}))
	require.NoError(t, s.PutEntry(ctx, &pagesift.CacheEntry{
		Key:    "abc123",
		Format: pagesift.FormatHTML,
		Output: []byte("new"),
	}))

	got, err := s.GetEntry(ctx, "abc123", pagesift.FormatHTML, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got.Output)
}

func TestCacheService_Expiry(t *testing.T) {
	t.Parallel()

	s := sqlite.NewCacheService(mustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, s.PutEntry(ctx, &pagesift.CacheEntry{
		Key:    "abc123",
		Format: pagesift.FormatHTML,
		Output: []byte("x"),
	}))

	time.Sleep(5 * time.Millisecond)

	_, err := s.GetEntry(ctx, "abc123", pagesift.FormatHTML, time.Nanosecond)

	require.Error(t, err)
	assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
}

func TestCacheService_PutInvalid(t *testing.T) {
	t.Parallel()

	s := sqlite.NewCacheService(mustOpenDB(t))

	err := s.PutEntry(context.Background(), &pagesift.CacheEntry{Format: pagesift.FormatHTML})

	require.Error(t, err)
	assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
}

func TestCacheService_PurgeExpired(t *testing.T) {
	t.Parallel()

	s := sqlite.NewCacheService(mustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, s.PutEntry(ctx, &pagesift.CacheEntry{
		Key:    "a",
		Format: pagesift.FormatHTML,
		Output: []byte("x"),
	}))
	require.NoError(t, s.PutEntry(ctx, &pagesift.CacheEntry{
		Key:    "b",
		Format: pagesift.FormatMarkdown,
		Output: []byte("y"),
	}))

	// created_at is stored at second precision, so make sure the cutoff
	// lands in a later second than the inserts.
	time.Sleep(1500 * time.Millisecond)

	n, err := s.PurgeExpired(ctx, 100*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = s.GetEntry(ctx, "a", pagesift.FormatHTML, 0)
	assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
}
