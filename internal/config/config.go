// Package config centralizes environment-driven settings for the API
// server and the seeding utility.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the Fretio backend.
type Config struct {
	Port              string
	DatabaseDSN       string
	JWTSecret         string
	TokenLifetime     time.Duration
	RedisAddr         string
	SellerAutoApprove bool
	AutoApproveDelay  time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getenv("PORT", "8080"),
		JWTSecret:         getenv("JWT_SECRET", "fretio-dev-secret"),
		TokenLifetime:     72 * time.Hour,
		RedisAddr:         getenv("REDIS_ADDR", "127.0.0.1:6379"),
		SellerAutoApprove: getenv("SELLER_AUTO_APPROVE", "true") == "true",
		AutoApproveDelay:  30 * time.Second,
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseDSN = dsn
	} else {
		cfg.DatabaseDSN = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s",
			getenv("DB_USER", "postgres"),
			getenv("DB_PASSWORD", "postgres"),
			getenv("DB_HOST", "127.0.0.1"),
			getenv("DB_PORT", "5432"),
			getenv("DB_NAME", "fretio"),
		)
	}

	if d := os.Getenv("SELLER_AUTO_APPROVE_DELAY"); d != "" {
		if parsed, err := time.ParseDuration(d); err == nil && parsed > 0 {
			cfg.AutoApproveDelay = parsed
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
