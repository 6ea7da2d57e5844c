package http_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pagesift/pagesift"
	pshttp "github.com/pagesift/pagesift/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()

		c := pshttp.NewMemoryCache(10)
		ctx := context.Background()

		require.NoError(t, c.PutEntry(ctx, &pagesift.CacheEntry{
			Key:    "k",
			Format: pagesift.FormatHTML,
			Output: []byte("out"),
		}))

		got, err := c.GetEntry(ctx, "k", pagesift.FormatHTML, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, []byte("out"), got.Output)
		assert.NotEmpty(t, got.ID)
	})

	t.Run("mutating a returned entry does not affect the cache", func(t *testing.T) {
		t.Parallel()

		c := pshttp.NewMemoryCache(10)
		ctx := context.Background()

		require.NoError(t, c.PutEntry(ctx, &pagesift.CacheEntry{
			Key:    "k",
			Format: pagesift.FormatHTML,
			Output: []byte("out"),
		}))

		got, err := c.GetEntry(ctx, "k", pagesift.FormatHTML, time.Minute)
		require.NoError(t, err)
		got.Output[0] = 'X'
		got.Output = append(got.Output, '!')
		got.Format = pagesift.FormatMarkdown

		again, err := c.GetEntry(ctx, "k", pagesift.FormatHTML, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, []byte("out"), again.Output)
		assert.Equal(t, pagesift.FormatHTML, again.Format)
	})

	t.Run("missing entry", func(t *testing.T) {
		t.Parallel()

		c := pshttp.NewMemoryCache(10)
		_, err := c.GetEntry(context.Background(), "nope", pagesift.FormatHTML, time.Minute)

		assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
	})

	t.Run("expired entry", func(t *testing.T) {
		t.Parallel()

		c := pshttp.NewMemoryCache(10)
		ctx := context.Background()

		require.NoError(t, c.PutEntry(ctx, &pagesift.CacheEntry{
			Key:    "k",
			Format: pagesift.FormatHTML,
			Output: []byte("out"),
		}))

		time.Sleep(5 * time.Millisecond)

		_, err := c.GetEntry(ctx, "k", pagesift.FormatHTML, time.Nanosecond)
		assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
	})

	t.Run("evicts oldest when full", func(t *testing.T) {
		t.Parallel()

		c := pshttp.NewMemoryCache(2)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			require.NoError(t, c.PutEntry(ctx, &pagesift.CacheEntry{
				Key:    fmt.Sprintf("k%d", i),
				Format: pagesift.FormatHTML,
				Output: []byte("out"),
			}))
		}

		assert.Equal(t, 2, c.Len())
		_, err := c.GetEntry(ctx, "k0", pagesift.FormatHTML, time.Minute)
		assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))

		_, err = c.GetEntry(ctx, "k2", pagesift.FormatHTML, time.Minute)
		assert.NoError(t, err)
	})

	t.Run("replacing an entry does not grow the cache", func(t *testing.T) {
		t.Parallel()

		c := pshttp.NewMemoryCache(2)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			require.NoError(t, c.PutEntry(ctx, &pagesift.CacheEntry{
				Key:    "same",
				Format: pagesift.FormatHTML,
				Output: []byte("out"),
			}))
		}

		assert.Equal(t, 1, c.Len())
	})

	t.Run("purge expired", func(t *testing.T) {
		t.Parallel()

		c := pshttp.NewMemoryCache(10)
		ctx := context.Background()

		require.NoError(t, c.PutEntry(ctx, &pagesift.CacheEntry{
			Key:    "k",
			Format: pagesift.FormatHTML,
			Output: []byte("out"),
		}))

		time.Sleep(5 * time.Millisecond)

		n, err := c.PurgeExpired(ctx, time.Nanosecond)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Zero(t, c.Len())
	})
}
