// Package service defines the contracts of the external collaborators the core consumes
package service

import (
	"context"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
)

// RateProvider is one strategy in the rate acquisition cascade.
// Fetch returns an error wrapping entity.ErrProviderUnavailable, entity.ErrProviderNotConfigured
// or entity.ErrMalformedPayload when the provider declines; it never panics on expected failures.
type RateProvider interface {
	// Code returns the provenance tag recorded on tables this provider produces
	Code() entity.Provenance

	// Name returns a human readable provider name for logs
	Name() string

	// Fetch retrieves the latest rates anchored at base
	Fetch(ctx context.Context, base entity.CurrencyCode) (*entity.ProviderRates, error)
}
