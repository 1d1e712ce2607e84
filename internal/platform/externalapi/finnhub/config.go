// Package finnhub provides a client for the Finnhub stock market API.
package finnhub

import (
	"time"

	"stockwatch/internal/platform/config"
)

const (
	// DefaultBaseURL is the public Finnhub REST endpoint.
	DefaultBaseURL = "https://finnhub.io/api/v1"
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for the Finnhub API client.
type Config struct {
	APIKey  string        // API key sent as the "token" query parameter
	BaseURL string        // Base URL for the API (e.g., "https://finnhub.io/api/v1")
	Timeout time.Duration // HTTP request timeout
}

// NewConfig builds the client configuration from the application config, filling defaults.
func NewConfig(c config.FinnhubConfig) Config {
	cfg := Config{APIKey: c.APIKey, BaseURL: c.BaseURL, Timeout: c.Timeout}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}
