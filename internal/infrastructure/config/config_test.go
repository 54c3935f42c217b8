package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/api"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
)

func TestLoadDefaults(t *testing.T) {
	// Setup
	v := viper.New()

	// Execute
	cfg, err := load(v, logger.NewNopLogger())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, logger.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 5*time.Minute, cfg.RateCacheTTL)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "./data", cfg.BadgerPath)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, api.FrankfurterBaseURL, cfg.FrankfurterURL)
	assert.Empty(t, cfg.ExchangeRateAPIKey)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("RATE_PROVIDER_TIMEOUT", "2s")
	t.Setenv("STORE_DRIVER", "Badger")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("EXCHANGERATE_API_KEY", "  abcdefghijklmnopqrstuvwxyz  ")

	v := viper.New()
	v.AutomaticEnv()

	cfg, err := load(v, logger.NewNopLogger())

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, logger.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, DriverBadger, cfg.StoreDriver)
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", cfg.ExchangeRateAPIKey)
	assert.True(t, cfg.AuthEnabled())
}

func TestLoadInvalidValues(t *testing.T) {
	t.Run("Invalid duration falls back to default", func(t *testing.T) {
		v := viper.New()
		v.Set("RATE_CACHE_TTL", "soon")
		v.Set("RATE_PROVIDER_TIMEOUT", "-1s")

		cfg, err := load(v, logger.NewNopLogger())

		require.NoError(t, err)
		assert.Equal(t, 5*time.Minute, cfg.RateCacheTTL)
		assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	})

	t.Run("Postgres requires a URL", func(t *testing.T) {
		v := viper.New()
		v.Set("STORE_DRIVER", "postgres")

		_, err := load(v, logger.NewNopLogger())

		assert.Error(t, err)
	})

	t.Run("Unknown driver", func(t *testing.T) {
		v := viper.New()
		v.Set("STORE_DRIVER", "mongo")

		_, err := load(v, logger.NewNopLogger())

		assert.Error(t, err)
	})
}
