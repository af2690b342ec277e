package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"secret-santa-backend/internal/common/cache"
	"secret-santa-backend/internal/features/assignment/models"
	"secret-santa-backend/internal/features/assignment/repository"
)

type lookupCache struct {
	cache *cache.CacheService
	ttl   time.Duration
}

func NewLookupCache(cacheService *cache.CacheService, ttl time.Duration) repository.LookupCache {
	return &lookupCache{cache: cacheService, ttl: ttl}
}

// Generation counters have no TTL; entries expire on their own.
func generationKey(telegramID int64) string {
	return fmt.Sprintf("santa:assignment:tg:%d:gen", telegramID)
}

func entryKey(telegramID, generation int64) string {
	return fmt.Sprintf("santa:assignment:tg:%d:%d", telegramID, generation)
}

func (c *lookupCache) Generation(ctx context.Context, telegramID int64) (int64, error) {
	return c.cache.Counter(ctx, generationKey(telegramID))
}

func (c *lookupCache) Get(ctx context.Context, telegramID, generation int64) (*models.Assignment, error) {
	var a models.Assignment
	if err := c.cache.Get(ctx, entryKey(telegramID, generation), &a); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, repository.ErrCacheMiss
		}
		return nil, err
	}
	return &a, nil
}

func (c *lookupCache) Set(ctx context.Context, telegramID, generation int64, a *models.Assignment) error {
	return c.cache.Set(ctx, entryKey(telegramID, generation), a, c.ttl)
}

func (c *lookupCache) Invalidate(ctx context.Context, telegramIDs ...int64) error {
	keys := make([]string, 0, len(telegramIDs))
	for _, id := range telegramIDs {
		keys = append(keys, generationKey(id))
	}
	return c.cache.Incr(ctx, keys...)
}
