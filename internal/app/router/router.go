// Package router はHTTPルーティングを構成します。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	stockshandler "stockwatch/internal/feature/stocks/transport/handler"
	watchlisthandler "stockwatch/internal/feature/watchlist/transport/handler"
	jwtmw "stockwatch/internal/platform/jwt"
)

// Options はルーター全体に関わる設定です。
type Options struct {
	// AllowedOrigins はCORSで許可するオリジンです。空または"*"を含む場合はすべて許可します。
	AllowedOrigins []string
	// JWTSecret が空でない場合、書き込み系ルートにBearerトークンを要求します。
	JWTSecret string
}

func NewRouter(stocks *stockshandler.StocksHandler, watchlist *watchlisthandler.WatchlistHandler,
	health gin.HandlerFunc, opts Options, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())
	// フロントエンドは別オリジンで動作する
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	// 導通確認用
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	s := r.Group("/stocks")
	{
		s.GET("/search", stocks.Search)
		s.GET("/news", stocks.News)
		s.GET("/quote/:symbol", stocks.Quote)
		s.GET("", watchlist.List)
	}

	// 書き込み系のルート
	// JWTSecretが設定されている場合のみ認証必須
	w := r.Group("/stocks")
	if opts.JWTSecret != "" {
		w.Use(jwtmw.AuthRequired(opts.JWTSecret))
	}
	{
		w.POST("/save", watchlist.Save)
		w.DELETE("/:id", watchlist.Delete)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// requestLogger はリクエストごとにメソッド・パス・ステータス・処理時間を出力します。
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("remote_addr", c.ClientIP()),
		}
		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
