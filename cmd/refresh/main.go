package main

import (
	"context"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stockwatch/internal/app/di"
	"stockwatch/internal/platform/config"
	platformdb "stockwatch/internal/platform/db"
	platformredis "stockwatch/internal/platform/redis"
)

// refresh は保存済みの全銘柄の株価を取り直してウォッチリストを更新します。
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := platformdb.OpenDB(cfg.DB, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}

	// 一覧キャッシュを無効化するため、Redisがあれば同じ構成で使う
	var rdb *redisv9.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		if tmp, err := platformredis.NewRedisClient(addr, cfg.Redis.Password, logger); err != nil {
			logger.Warn("Redis unavailable. Cached list will expire by TTL.", zap.Error(err))
		} else {
			rdb = tmp
			defer func() { _ = rdb.Close() }()
		}
	}

	repo := di.NewWatchlistRepository(db, rdb, cfg.Redis.TTL)
	ucs := di.NewUsecases(di.NewMarket(cfg, logger), repo, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := ucs.Watchlist.RefreshAll(ctx)
	if err != nil {
		logger.Fatal("refresh failed", zap.Int("refreshed", n), zap.Error(err))
	}
	logger.Info("refresh ok", zap.Int("refreshed", n))
}
