package mock

import (
	"context"
	"time"

	"github.com/pagesift/pagesift"
)

var _ pagesift.CacheService = (*CacheService)(nil)

// CacheService is a mock implementation of pagesift.CacheService.
type CacheService struct {
	GetEntryFn     func(ctx context.Context, key, format string, maxAge time.Duration) (*pagesift.CacheEntry, error)
	PutEntryFn     func(ctx context.Context, entry *pagesift.CacheEntry) error
	PurgeExpiredFn func(ctx context.Context, maxAge time.Duration) (int, error)
}

func (s *CacheService) GetEntry(ctx context.Context, key, format string, maxAge time.Duration) (*pagesift.CacheEntry, error) {
	return s.GetEntryFn(ctx, key, format, maxAge)
}

func (s *CacheService) PutEntry(ctx context.Context, entry *pagesift.CacheEntry) error {
	return s.PutEntryFn(ctx, entry)
}

func (s *CacheService) PurgeExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	return s.PurgeExpiredFn(ctx, maxAge)
}
