// Package config loads runtime settings from the environment and an optional .env file
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/api"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/cache"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

const (
	defaultProviderTimeout = api.DefaultTimeout
	defaultRateCacheTTL    = cache.DefaultExpiration
)

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel logger.Level

	ExchangeRateAPIKey string
	ProviderTimeout    time.Duration
	RateCacheTTL       time.Duration
	ExchangeRateV6URL  string
	FrankfurterURL     string
	ExchangeRateV4URL  string

	StoreDriver string
	BadgerPath  string
	DatabaseURL string

	AuthJWTSecret string
	RateLimit     string
}

// AuthEnabled reports whether mutating routes require a bearer token
func (c *Config) AuthEnabled() bool {
	return c.AuthJWTSecret != ""
}

// Load reads .env (if present) and the process environment
func Load(log logger.Logger) (*Config, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	return load(v, log)
}

func load(v *viper.Viper, log logger.Logger) (*Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("EXCHANGERATE_API_KEY", "")
	v.SetDefault("RATE_PROVIDER_TIMEOUT", defaultProviderTimeout.String())
	v.SetDefault("RATE_CACHE_TTL", defaultRateCacheTTL.String())
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("BADGER_PATH", "./data")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("AUTH_JWT_SECRET", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("EXCHANGERATE_V6_URL", api.ExchangeRateV6BaseURL)
	v.SetDefault("FRANKFURTER_URL", api.FrankfurterBaseURL)
	v.SetDefault("EXCHANGERATE_V4_URL", api.ExchangeRateFreeBaseURL)

	cfg := &Config{
		Port:               v.GetString("PORT"),
		LogLevel:           logger.ParseLevel(v.GetString("LOG_LEVEL")),
		ExchangeRateAPIKey: strings.TrimSpace(v.GetString("EXCHANGERATE_API_KEY")),
		ProviderTimeout:    duration(v, "RATE_PROVIDER_TIMEOUT", defaultProviderTimeout, log),
		RateCacheTTL:       duration(v, "RATE_CACHE_TTL", defaultRateCacheTTL, log),
		ExchangeRateV6URL:  v.GetString("EXCHANGERATE_V6_URL"),
		FrankfurterURL:     v.GetString("FRANKFURTER_URL"),
		ExchangeRateV4URL:  v.GetString("EXCHANGERATE_V4_URL"),
		StoreDriver:        strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		BadgerPath:         v.GetString("BADGER_PATH"),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		AuthJWTSecret:      v.GetString("AUTH_JWT_SECRET"),
		RateLimit:          v.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Warn("PORT not set, using default", map[string]interface{}{"port": cfg.Port})
	}

	switch cfg.StoreDriver {
	case DriverMemory, DriverBadger:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORE_DRIVER=%s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.ExchangeRateAPIKey == "" {
		log.Warn("EXCHANGERATE_API_KEY not set, keyed provider disabled", nil)
	}
	if !cfg.AuthEnabled() {
		log.Warn("AUTH_JWT_SECRET not set, mutating routes are open", nil)
	}

	return cfg, nil
}

func duration(v *viper.Viper, key string, def time.Duration, log logger.Logger) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn("Invalid duration, using default", map[string]interface{}{
			"key":     key,
			"value":   raw,
			"default": def.String(),
		})
		return def
	}
	return d
}
