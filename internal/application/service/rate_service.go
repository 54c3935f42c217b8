// Package service implements the application use cases of the bureau dashboard
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/rates"
	domainsvc "github.com/damon-houk/forex-bureau-dashboard/internal/domain/service"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/cache"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/middleware"
)

// RateFetcher is anything that can produce a rate table for a base currency
type RateFetcher interface {
	FetchRates(ctx context.Context, base entity.CurrencyCode) *entity.RateTable
}

// keyedProvider is implemented by providers that need an API key
type keyedProvider interface {
	Configured() bool
}

// RateService acquires rate tables by trying the providers in order and falling
// back to the static tables when none of them answers
type RateService struct {
	providers   []domainsvc.RateProvider
	cache       *cache.RateTableCache
	needsAPIKey bool
	logger      logger.Logger
	now         func() time.Time
}

// NewRateService creates the acquisition pipeline. Providers are tried in the given order.
// A nil cache disables caching.
func NewRateService(providers []domainsvc.RateProvider, rateCache *cache.RateTableCache, log logger.Logger) *RateService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	needsAPIKey := true
	for _, p := range providers {
		if kp, ok := p.(keyedProvider); ok && kp.Configured() {
			needsAPIKey = false
		}
	}

	return &RateService{
		providers:   providers,
		cache:       rateCache,
		needsAPIKey: needsAPIKey,
		logger:      log,
		now:         time.Now,
	}
}

// FetchRates returns the current rates anchored at base, upper-cased (USD when empty). It never fails:
// when no provider answers the static fallback table is returned, and an unexpected fault
// anywhere in the cascade yields the fallback table tagged entity.ProvenanceFallbackError.
// The returned table is shared with the cache and must not be modified.
func (s *RateService) FetchRates(ctx context.Context, base entity.CurrencyCode) (table *entity.RateTable) {
	base = entity.NormalizeCurrencyCode(string(base))
	if base == "" {
		base = entity.DefaultBase
	}
	requestID := middleware.GetRequestID(ctx)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Unexpected fault while fetching rates", map[string]interface{}{
				"request_id": requestID,
				"base":       base,
				"panic":      fmt.Sprint(r),
			})
			table = s.fallback(base, entity.ProvenanceFallbackError)
		}
	}()

	if s.cache != nil {
		if cached := s.cache.Get(base); cached != nil {
			s.logger.Debug("Serving cached rates", map[string]interface{}{
				"request_id": requestID,
				"base":       base,
				"source":     cached.Provenance,
			})
			return cached
		}
	}

	table = s.acquire(ctx, base, requestID)
	if table == nil {
		s.logger.Warn("All rate providers failed, using fallback rates", map[string]interface{}{
			"request_id": requestID,
			"base":       base,
		})
		return s.fallback(base, entity.ProvenanceFallback)
	}

	if s.cache != nil {
		s.cache.Put(table)
	}

	return table
}

// acquire walks the cascade and returns the first live table, or nil
func (s *RateService) acquire(ctx context.Context, base entity.CurrencyCode, requestID string) *entity.RateTable {
	for _, provider := range s.providers {
		start := s.now()
		data, err := provider.Fetch(ctx, base)
		if err == nil {
			err = checkProviderRates(data, base)
		}

		if err != nil {
			fields := map[string]interface{}{
				"request_id":  requestID,
				"provider":    provider.Code(),
				"base":        base,
				"duration_ms": s.now().Sub(start).Milliseconds(),
				"error":       err.Error(),
			}
			if errors.Is(err, entity.ErrProviderNotConfigured) {
				s.logger.Info("Rate provider skipped", fields)
			} else {
				s.logger.Warn("Rate provider failed, trying next", fields)
			}
			continue
		}

		s.logger.Info("Rates acquired", map[string]interface{}{
			"request_id":  requestID,
			"provider":    provider.Code(),
			"base":        base,
			"currencies":  len(data.Rates),
			"duration_ms": s.now().Sub(start).Milliseconds(),
		})

		return s.normalize(data, base, provider.Code())
	}

	return nil
}

// checkProviderRates rejects answers that cannot be normalized into a table for base
func checkProviderRates(data *entity.ProviderRates, base entity.CurrencyCode) error {
	if data == nil || len(data.Rates) == 0 {
		return fmt.Errorf("%w: empty rates", entity.ErrMalformedPayload)
	}
	if data.Base != "" && entity.NormalizeCurrencyCode(string(data.Base)) != base {
		return fmt.Errorf("%w: requested base %s, provider answered %s", entity.ErrMalformedPayload, base, data.Base)
	}
	return nil
}

// normalize turns a provider answer into a rate table with an explicit self rate
func (s *RateService) normalize(data *entity.ProviderRates, base entity.CurrencyCode, source entity.Provenance) *entity.RateTable {
	now := s.now().UTC()

	table := rates.Sanitize(data.Rates)
	table[base] = 1

	date := data.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}

	return &entity.RateTable{
		Base:        base,
		Date:        date,
		Rates:       table,
		Provenance:  source,
		Timestamp:   now,
		NeedsAPIKey: s.needsAPIKey,
	}
}

// fallback builds the static table for base
func (s *RateService) fallback(base entity.CurrencyCode, source entity.Provenance) *entity.RateTable {
	now := s.now().UTC()

	return &entity.RateTable{
		Base:        base,
		Date:        now.Format("2006-01-02"),
		Rates:       rates.FallbackRates(base),
		Provenance:  source,
		Timestamp:   now,
		NeedsAPIKey: true,
	}
}
