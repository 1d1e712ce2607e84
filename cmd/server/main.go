package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stockwatch/internal/app/di"
	"stockwatch/internal/app/router"
	stockshandler "stockwatch/internal/feature/stocks/transport/handler"
	watchlisthandler "stockwatch/internal/feature/watchlist/transport/handler"
	"stockwatch/internal/platform/config"
	platformdb "stockwatch/internal/platform/db"
	healthhandler "stockwatch/internal/platform/http/handler"
	platformredis "stockwatch/internal/platform/redis"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// db
	db, err := platformdb.OpenDB(cfg.DB, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}
	checks := map[string]healthhandler.Check{"db": sqlDB.PingContext}

	// Redis
	var rdb *redisv9.Client
	if addr := cfg.Redis.Addr(); addr == "" {
		logger.Warn("REDIS_HOST is not set. Running without cache.")
	} else if tmp, err := platformredis.NewRedisClient(addr, cfg.Redis.Password, logger); err != nil {
		logger.Warn("Redis unavailable. Running without cache.", zap.Error(err))
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("failed to close Redis client", zap.Error(err))
			}
		}()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// Repository / Usecase
	repo := di.NewWatchlistRepository(db, rdb, cfg.Redis.TTL)
	ucs := di.NewUsecases(di.NewMarket(cfg, logger), repo, logger)

	// Handler
	stocksH := stockshandler.NewStocksHandler(ucs.Stocks)
	watchlistH := watchlisthandler.NewWatchlistHandler(ucs.Watchlist, logger.Named("http"))

	// JWT_SECRETチェック（書き込みAPIの保護）
	if cfg.JWT.Secret == "" {
		logger.Warn("JWT_SECRET is not set. Write routes are not protected.")
	}

	r := router.NewRouter(stocksH, watchlistH, healthhandler.Health(checks), router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		JWTSecret:      cfg.JWT.Secret,
	}, logger.Named("http"))

	srv := &http.Server{Addr: ":" + cfg.App.Port, Handler: r}

	go func() {
		logger.Info("server started", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
