package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/perpview/perpview/internal/domain"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	GatewayURL            string
	GatewayRetryMax       int
	GatewayRetryBaseDelay time.Duration
	Venue                 domain.Venue
	DeriveTimeout         time.Duration
	SubaccountConcurrency int
	HTTPPort              string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is merged in first when present.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return Config{
		GatewayURL:            envOrDefault("GATEWAY_URL", "https://dlob.drift.trade"),
		GatewayRetryMax:       envOrDefaultInt("GATEWAY_RETRY_MAX", 5),
		GatewayRetryBaseDelay: envOrDefaultDuration("GATEWAY_RETRY_BASE_DELAY", 2*time.Second),
		Venue:                 envOrDefaultVenue("VENUE", domain.VenueMainnet),
		DeriveTimeout:         envOrDefaultDuration("DERIVE_TIMEOUT", 60*time.Second),
		SubaccountConcurrency: envOrDefaultInt("SUBACCOUNT_CONCURRENCY", 4),
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func envOrDefaultVenue(key string, defaultVal domain.Venue) domain.Venue {
	switch v := os.Getenv(key); v {
	case "":
		return defaultVal
	case string(domain.VenueMainnet), string(domain.VenueDevnet):
		return domain.Venue(v)
	default:
		slog.Warn("unknown venue, using default", "key", key, "value", v, "default", defaultVal)
		return defaultVal
	}
}
