// Package config loads application configuration from .env, environment variables and defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	DB       DBConfig       `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Finnhub  FinnhubConfig  `mapstructure:"finnhub"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Throttle ThrottleConfig `mapstructure:"throttle"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type AppConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"` // e.g., "local", "prod"
}

// DBConfig はデータベース接続設定です。DSNが空の場合は個別項目から組み立てます。
type DBConfig struct {
	Driver         string        `mapstructure:"driver"` // "sqlite" or "postgres"
	DSN            string        `mapstructure:"dsn"`
	Path           string        `mapstructure:"path"` // sqlite file
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Name           string        `mapstructure:"name"`
	SSLMode        string        `mapstructure:"sslmode"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	RunMigrations  bool          `mapstructure:"run_migrations"`
}

// RedisConfig はRedis接続設定です。Hostが空の場合、キャッシュは無効になります。
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type FinnhubConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// JWTConfig は書き込みAPIの認証設定です。Secretが空の場合、認証は無効になります。
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type ThrottleConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

var keys = []string{
	"app.port", "app.env",
	"db.driver", "db.dsn", "db.path", "db.host", "db.port", "db.user", "db.password", "db.name", "db.sslmode",
	"db.connect_timeout", "db.run_migrations",
	"redis.host", "redis.port", "redis.password", "redis.ttl",
	"finnhub.api_key", "finnhub.base_url", "finnhub.timeout",
	"jwt.secret", "jwt.expiration",
	"throttle.delay",
	"cors.allowed_origins",
}

// Load reads configuration from a .env file (if present), environment variables and defaults.
// Keys map to upper-case env vars with dots replaced by underscores (db.driver -> DB_DRIVER).
func Load() (*Config, error) {
	// .envがなくてもエラーにしない（本番は環境変数のみ）
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "local")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "stock.db")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.connect_timeout", 60*time.Second)
	v.SetDefault("db.run_migrations", true)

	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.ttl", 5*time.Minute)

	v.SetDefault("finnhub.base_url", "https://finnhub.io/api/v1")
	v.SetDefault("finnhub.timeout", 10*time.Second)

	v.SetDefault("jwt.expiration", time.Hour)
	v.SetDefault("throttle.delay", 200*time.Millisecond)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	cfg.DB.Driver = strings.ToLower(cfg.DB.Driver)
	if cfg.DB.Driver != "sqlite" && cfg.DB.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
	if cfg.Throttle.Delay <= 0 {
		return nil, fmt.Errorf("throttle delay must be positive, got %s", cfg.Throttle.Delay)
	}

	return &cfg, nil
}
