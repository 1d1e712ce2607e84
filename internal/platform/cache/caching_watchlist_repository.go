// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"stockwatch/internal/feature/watchlist/domain/entity"
	"stockwatch/internal/feature/watchlist/usecase"
)

// CachingWatchlistRepository decorates a WatchlistRepository with Redis caching.
// Only List is cached; every write drops the cached list.
type CachingWatchlistRepository struct {
	inner     usecase.WatchlistRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.WatchlistRepository = (*CachingWatchlistRepository)(nil)

// NewCachingWatchlistRepository decorates a WatchlistRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "watchlist".
func NewCachingWatchlistRepository(rdb *redis.Client, ttl time.Duration, inner usecase.WatchlistRepository, namespace string) *CachingWatchlistRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "watchlist"
	}
	return &CachingWatchlistRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Upsert saves the stock and invalidates the cached list.
func (c *CachingWatchlistRepository) Upsert(ctx context.Context, s *entity.WatchedStock) error {
	if err := c.inner.Upsert(ctx, s); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// List retrieves the watchlist, checking cache first then falling back to the database.
func (c *CachingWatchlistRepository) List(ctx context.Context) ([]entity.WatchedStock, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.WatchedStock
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// ListSymbols is not cached; the refresh job always reads the database.
func (c *CachingWatchlistRepository) ListSymbols(ctx context.Context) ([]string, error) {
	return c.inner.ListSymbols(ctx)
}

// Delete removes the stock and invalidates the cached list.
func (c *CachingWatchlistRepository) Delete(ctx context.Context, id uint) (*entity.WatchedStock, error) {
	s, err := c.inner.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return s, nil
}

// invalidate drops the cached list. Best effort: a failed DEL only delays freshness until the TTL.
func (c *CachingWatchlistRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.listKey()).Err()
}

// listKey returns the cache key for the full watchlist.
func (c *CachingWatchlistRepository) listKey() string {
	return c.namespace + ":all"
}
