package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"stockwatch/internal/platform/config"
	jwtmw "stockwatch/internal/platform/jwt"
)

// token は書き込みAPI用のBearerトークンを発行して標準出力に書き出します。
func main() {
	subject := flag.String("sub", "cli", "subject claim")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	token, err := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Expiration).GenerateToken(*subject)
	if err != nil {
		logger.Fatal("failed to generate token", zap.Error(err))
	}
	fmt.Fprintln(os.Stdout, token)
}
