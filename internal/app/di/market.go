// Package di provides dependency injection factories for creating application components.
package di

import (
	"go.uber.org/zap"

	"stockwatch/internal/platform/config"
	"stockwatch/internal/platform/externalapi/finnhub"
	"stockwatch/internal/shared/ratelimiter"
)

// NewMarket creates a Finnhub client whose requests all go through one RequestQueue.
func NewMarket(cfg *config.Config, logger *zap.Logger) *finnhub.Client {
	fcfg := finnhub.NewConfig(cfg.Finnhub)
	if fcfg.APIKey == "" {
		logger.Warn("FINNHUB_API_KEY is not set. Provider calls will be rejected.")
	}
	queue := ratelimiter.NewRequestQueue(cfg.Throttle.Delay, logger.Named("throttle"))
	return finnhub.NewClient(fcfg, finnhub.NewHTTPClient(fcfg.Timeout), queue, logger.Named("finnhub"))
}
