package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
)

// ExchangeRateFreeBaseURL is the keyless ExchangeRate-API v4 endpoint
const ExchangeRateFreeBaseURL = "https://api.exchangerate-api.com"

// ExchangeRateFreeClient fetches rates from the keyless ExchangeRate-API v4 tier
type ExchangeRateFreeClient struct {
	httpGetter
}

// NewExchangeRateFreeClient creates a client for the free tier
func NewExchangeRateFreeClient(baseURL string, httpClient *http.Client, timeout time.Duration) *ExchangeRateFreeClient {
	if baseURL == "" {
		baseURL = ExchangeRateFreeBaseURL
	}

	return &ExchangeRateFreeClient{httpGetter: newHTTPGetter(baseURL, httpClient, timeout)}
}

func (c *ExchangeRateFreeClient) Code() entity.Provenance {
	return entity.ProvenanceExchangeRateFree
}

func (c *ExchangeRateFreeClient) Name() string {
	return "ExchangeRate-API v4 (free)"
}

// Fetch retrieves the latest rates for base
func (c *ExchangeRateFreeClient) Fetch(ctx context.Context, base entity.CurrencyCode) (*entity.ProviderRates, error) {
	reqURL := fmt.Sprintf("%s/v4/latest/%s", c.baseURL, url.PathEscape(string(base)))
	return fetchLatest(ctx, c.httpGetter, reqURL)
}
