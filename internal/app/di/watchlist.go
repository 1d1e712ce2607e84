package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	stocksusecase "stockwatch/internal/feature/stocks/usecase"
	"stockwatch/internal/feature/watchlist/adapters"
	"stockwatch/internal/feature/watchlist/usecase"
	"stockwatch/internal/platform/cache"
)

// NewWatchlistRepository creates a WatchlistRepository implementation.
// If Redis is available, the GORM repository is wrapped with the list cache.
func NewWatchlistRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) usecase.WatchlistRepository {
	repo := adapters.NewWatchlistRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingWatchlistRepository(rdb, ttl, repo, "watchlist")
}

// Usecases は各フィーチャーのユースケースをまとめたものです。
type Usecases struct {
	Stocks    *stocksusecase.StocksUsecase
	Watchlist *usecase.WatchlistUsecase
}

// NewUsecases wires the market client, repositories and usecases together.
func NewUsecases(market stocksusecase.MarketRepository, repo usecase.WatchlistRepository, logger *zap.Logger) Usecases {
	stocks := stocksusecase.NewStocksUsecase(market, logger.Named("stocks"))
	return Usecases{
		Stocks:    stocks,
		Watchlist: usecase.NewWatchlistUsecase(repo, stocks, logger.Named("watchlist")),
	}
}
