package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	domainsvc "github.com/damon-houk/forex-bureau-dashboard/internal/domain/service"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/cache"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
	"github.com/damon-houk/forex-bureau-dashboard/internal/mocks"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// newCascade returns the three providers in cascade order; the keyed one is configured when keyed is true
func newCascade(keyed bool) (*mocks.MockRateProvider, *mocks.MockRateProvider, *mocks.MockRateProvider) {
	return &mocks.MockRateProvider{Tag: entity.ProvenanceExchangeRateV6, Key: keyed},
		&mocks.MockRateProvider{Tag: entity.ProvenanceFrankfurter},
		&mocks.MockRateProvider{Tag: entity.ProvenanceExchangeRateFree}
}

func newTestRateService(c *cache.RateTableCache, providers ...domainsvc.RateProvider) *RateService {
	s := NewRateService(providers, c, logger.NewNopLogger())
	s.now = func() time.Time { return fixedNow }
	return s
}

func usdRates() *entity.ProviderRates {
	return &entity.ProviderRates{
		Base:  "USD",
		Date:  "2025-03-10",
		Rates: entity.Rates{"USD": 0.99, "EUR": 0.92, "KES": 129.5},
	}
}

func TestRateServiceCascade(t *testing.T) {
	ctx := context.Background()
	unavailable := fmt.Errorf("%w: status 503", entity.ErrProviderUnavailable)

	t.Run("First provider answers", func(t *testing.T) {
		// Setup
		a, b, c := newCascade(true)
		a.On("Fetch", mock.Anything, entity.CurrencyCode("USD")).Return(usdRates(), nil).Once()
		s := newTestRateService(nil, a, b, c)

		// Execute
		table := s.FetchRates(ctx, "USD")

		// Assert
		require.NotNil(t, table)
		assert.Equal(t, entity.ProvenanceExchangeRateV6, table.Provenance)
		assert.Equal(t, "2025-03-10", table.Date)
		assert.Equal(t, 1.0, table.Rates["USD"], "self rate is overwritten")
		assert.Equal(t, 0.92, table.Rates["EUR"])
		assert.False(t, table.NeedsAPIKey)
		assert.Equal(t, fixedNow, table.Timestamp)
		b.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
		c.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("Unconfigured key skips to second provider", func(t *testing.T) {
		a, b, c := newCascade(false)
		a.On("Fetch", mock.Anything, entity.CurrencyCode("USD")).Return(nil, entity.ErrProviderNotConfigured).Once()
		b.On("Fetch", mock.Anything, entity.CurrencyCode("USD")).Return(usdRates(), nil).Once()
		s := newTestRateService(nil, a, b, c)

		table := s.FetchRates(ctx, "USD")

		assert.Equal(t, entity.ProvenanceFrankfurter, table.Provenance)
		assert.True(t, table.NeedsAPIKey)
		a.AssertExpectations(t)
		b.AssertExpectations(t)
		c.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("Stops at third provider", func(t *testing.T) {
		a, b, c := newCascade(true)
		a.On("Fetch", mock.Anything, entity.CurrencyCode("EUR")).Return(nil, unavailable).Once()
		b.On("Fetch", mock.Anything, entity.CurrencyCode("EUR")).Return(nil, entity.ErrMalformedPayload).Once()
		c.On("Fetch", mock.Anything, entity.CurrencyCode("EUR")).Return(&entity.ProviderRates{
			Base:  "EUR",
			Date:  "2025-03-09",
			Rates: entity.Rates{"USD": 1.09, "GBP": 0.84},
		}, nil).Once()
		s := newTestRateService(nil, a, b, c)

		table := s.FetchRates(ctx, "EUR")

		assert.Equal(t, entity.ProvenanceExchangeRateFree, table.Provenance)
		assert.Equal(t, entity.CurrencyCode("EUR"), table.Base)
		assert.Equal(t, 1.0, table.Rates["EUR"])
		assert.False(t, table.NeedsAPIKey, "key is configured even though its provider failed")
		a.AssertExpectations(t)
		b.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("Answer for another base is rejected", func(t *testing.T) {
		a, b, c := newCascade(false)
		a.On("Fetch", mock.Anything, entity.CurrencyCode("GBP")).Return(nil, entity.ErrProviderNotConfigured)
		b.On("Fetch", mock.Anything, entity.CurrencyCode("GBP")).Return(usdRates(), nil).Once()
		c.On("Fetch", mock.Anything, entity.CurrencyCode("GBP")).Return(&entity.ProviderRates{
			Base:  "GBP",
			Rates: entity.Rates{"USD": 1.27},
		}, nil).Once()
		s := newTestRateService(nil, a, b, c)

		table := s.FetchRates(ctx, "GBP")

		assert.Equal(t, entity.ProvenanceExchangeRateFree, table.Provenance)
		assert.Equal(t, "2025-03-10", table.Date, "missing date defaults to today")
	})

	t.Run("Empty base defaults to USD", func(t *testing.T) {
		a, b, c := newCascade(true)
		a.On("Fetch", mock.Anything, entity.CurrencyCode("USD")).Return(usdRates(), nil).Once()
		s := newTestRateService(nil, a, b, c)

		table := s.FetchRates(ctx, "")

		assert.Equal(t, entity.DefaultBase, table.Base)
		a.AssertExpectations(t)
	})

	t.Run("Lower-case base is upper-cased before the cascade", func(t *testing.T) {
		// Setup
		a, b, c := newCascade(true)
		a.On("Fetch", mock.Anything, entity.CurrencyCode("EUR")).Return(&entity.ProviderRates{
			Base:  "EUR",
			Date:  "2025-03-10",
			Rates: entity.Rates{"USD": 1.09, "GBP": 0.86},
		}, nil).Once()
		s := newTestRateService(nil, a, b, c)

		// Execute
		table := s.FetchRates(ctx, " eur ")

		// Assert
		assert.Equal(t, entity.CurrencyCode("EUR"), table.Base)
		assert.Equal(t, entity.ProvenanceExchangeRateV6, table.Provenance)
		assert.Equal(t, entity.Rates{"EUR": 1, "USD": 1.09, "GBP": 0.86}, table.Rates)
		a.AssertExpectations(t)
		b.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("Invalid provider values are dropped", func(t *testing.T) {
		a, b, c := newCascade(true)
		a.On("Fetch", mock.Anything, entity.CurrencyCode("USD")).Return(&entity.ProviderRates{
			Base:  "USD",
			Rates: entity.Rates{"EUR": 0.92, "XAU": 0, "BAD": -3},
		}, nil).Once()
		s := newTestRateService(nil, a, b, c)

		table := s.FetchRates(ctx, "USD")

		assert.Equal(t, entity.Rates{"USD": 1, "EUR": 0.92}, table.Rates)
	})
}

func TestRateServiceFallback(t *testing.T) {
	ctx := context.Background()

	failing := func() []domainsvc.RateProvider {
		a, b, c := newCascade(false)
		for _, p := range []*mocks.MockRateProvider{a, b, c} {
			p.On("Fetch", mock.Anything, mock.Anything).Return(nil, entity.ErrProviderUnavailable)
		}
		return []domainsvc.RateProvider{a, b, c}
	}

	t.Run("All providers fail", func(t *testing.T) {
		for _, base := range []entity.CurrencyCode{"USD", "EUR", "KES", "ZZZ"} {
			s := newTestRateService(nil, failing()...)

			table := s.FetchRates(ctx, base)

			require.NotNil(t, table, base)
			assert.Equal(t, entity.ProvenanceFallback, table.Provenance, base)
			assert.Equal(t, base, table.Base)
			assert.Equal(t, 1.0, table.Rates[base], base)
			assert.True(t, table.NeedsAPIKey)
			assert.Equal(t, "2025-03-10", table.Date)
			for code, rate := range table.Rates {
				assert.Greater(t, rate, 0.0, "%s/%s", base, code)
			}
		}
	})

	t.Run("Lower-case base falls back to its own anchored table", func(t *testing.T) {
		s := newTestRateService(nil, failing()...)

		table := s.FetchRates(ctx, "eur")

		assert.Equal(t, entity.CurrencyCode("EUR"), table.Base)
		assert.Equal(t, entity.ProvenanceFallback, table.Provenance)
		assert.Equal(t, 1.0, table.Rates["EUR"])
		assert.Greater(t, table.Rates["USD"], 0.0)
		assert.NotContains(t, table.Rates, entity.CurrencyCode("eur"))
	})

	t.Run("Fallback tables are not cached", func(t *testing.T) {
		a := &mocks.MockRateProvider{Tag: entity.ProvenanceFrankfurter}
		a.On("Fetch", mock.Anything, entity.CurrencyCode("USD")).Return(nil, entity.ErrProviderUnavailable).Once()
		a.On("Fetch", mock.Anything, entity.CurrencyCode("USD")).Return(usdRates(), nil).Once()
		s := newTestRateService(cache.NewRateTableCache(time.Minute), a)

		first := s.FetchRates(ctx, "USD")
		second := s.FetchRates(ctx, "USD")

		assert.Equal(t, entity.ProvenanceFallback, first.Provenance)
		assert.Equal(t, entity.ProvenanceFrankfurter, second.Provenance)
		a.AssertExpectations(t)
	})

	t.Run("Unexpected fault yields fallback-error", func(t *testing.T) {
		a := &mocks.MockRateProvider{Tag: entity.ProvenanceExchangeRateV6, Key: true}
		a.On("Fetch", mock.Anything, entity.CurrencyCode("EUR")).Run(func(args mock.Arguments) {
			panic("provider exploded")
		}).Return(nil, nil)
		s := newTestRateService(nil, a)

		var table *entity.RateTable
		assert.NotPanics(t, func() { table = s.FetchRates(ctx, "EUR") })

		require.NotNil(t, table)
		assert.Equal(t, entity.ProvenanceFallbackError, table.Provenance)
		assert.True(t, table.Provenance.IsFallback())
		assert.Equal(t, 1.0, table.Rates["EUR"])
		assert.True(t, table.NeedsAPIKey)
	})

	t.Run("No providers at all", func(t *testing.T) {
		s := newTestRateService(nil)

		table := s.FetchRates(ctx, "USD")

		assert.Equal(t, entity.ProvenanceFallback, table.Provenance)
		assert.Equal(t, 0.92, table.Rates["EUR"])
	})
}

func TestRateServiceCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Fresh table is served from cache", func(t *testing.T) {
		a, b, c := newCascade(true)
		a.On("Fetch", mock.Anything, entity.CurrencyCode("USD")).Return(usdRates(), nil).Once()
		rateCache := cache.NewRateTableCache(time.Minute)
		s := newTestRateService(rateCache, a, b, c)

		first := s.FetchRates(ctx, "USD")
		second := s.FetchRates(ctx, "USD")

		assert.Same(t, first, second)
		a.AssertNumberOfCalls(t, "Fetch", 1)
		assert.Equal(t, 1, rateCache.Size())
	})

	t.Run("Bases are cached separately", func(t *testing.T) {
		a := &mocks.MockRateProvider{Tag: entity.ProvenanceFrankfurter}
		a.On("Fetch", mock.Anything, entity.CurrencyCode("USD")).Return(usdRates(), nil).Once()
		a.On("Fetch", mock.Anything, entity.CurrencyCode("EUR")).Return(&entity.ProviderRates{
			Base:  "EUR",
			Rates: entity.Rates{"USD": 1.09},
		}, nil).Once()
		s := newTestRateService(cache.NewRateTableCache(time.Minute), a)

		assert.Equal(t, entity.CurrencyCode("USD"), s.FetchRates(ctx, "USD").Base)
		assert.Equal(t, entity.CurrencyCode("EUR"), s.FetchRates(ctx, "EUR").Base)
		a.AssertExpectations(t)
	})

	t.Run("Stale table is re-acquired", func(t *testing.T) {
		a := &mocks.MockRateProvider{Tag: entity.ProvenanceFrankfurter}
		a.On("Fetch", mock.Anything, entity.CurrencyCode("USD")).Return(usdRates(), nil).Twice()
		s := NewRateService([]domainsvc.RateProvider{a}, cache.NewRateTableCache(time.Millisecond), logger.NewNopLogger())

		s.FetchRates(ctx, "USD")
		time.Sleep(5 * time.Millisecond)
		s.FetchRates(ctx, "USD")

		a.AssertNumberOfCalls(t, "Fetch", 2)
	})
}

func TestRateServiceLogging(t *testing.T) {
	// Setup
	mockLogger := new(mocks.MockLogger)
	mockLogger.On("Info", mock.Anything, mock.Anything).Maybe()
	mockLogger.On("Debug", mock.Anything, mock.Anything).Maybe()
	mockLogger.On("Warn", "Rate provider failed, trying next", mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["provider"] == entity.ProvenanceFrankfurter
	})).Once()

	a := &mocks.MockRateProvider{Tag: entity.ProvenanceFrankfurter}
	a.On("Fetch", mock.Anything, entity.CurrencyCode("USD")).Return(nil, entity.ErrProviderUnavailable)
	b := &mocks.MockRateProvider{Tag: entity.ProvenanceExchangeRateFree}
	b.On("Fetch", mock.Anything, entity.CurrencyCode("USD")).Return(usdRates(), nil)

	s := NewRateService([]domainsvc.RateProvider{a, b}, nil, mockLogger)

	// Execute
	table := s.FetchRates(context.Background(), "USD")

	// Assert
	assert.Equal(t, entity.ProvenanceExchangeRateFree, table.Provenance)
	mockLogger.AssertExpectations(t)
}
