package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
)

// FrankfurterBaseURL is the free Frankfurter API endpoint (ECB reference rates)
const FrankfurterBaseURL = "https://api.frankfurter.app"

// FrankfurterClient fetches rates from the Frankfurter API, which only knows
// the ECB reference currencies
type FrankfurterClient struct {
	httpGetter
}

// NewFrankfurterClient creates a Frankfurter client
func NewFrankfurterClient(baseURL string, httpClient *http.Client, timeout time.Duration) *FrankfurterClient {
	if baseURL == "" {
		baseURL = FrankfurterBaseURL
	}

	return &FrankfurterClient{httpGetter: newHTTPGetter(baseURL, httpClient, timeout)}
}

// latestRatesResponse is the {base, date, rates} shape shared by the free providers
type latestRatesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func (c *FrankfurterClient) Code() entity.Provenance {
	return entity.ProvenanceFrankfurter
}

func (c *FrankfurterClient) Name() string {
	return "Frankfurter"
}

// Fetch retrieves the latest rates for base
func (c *FrankfurterClient) Fetch(ctx context.Context, base entity.CurrencyCode) (*entity.ProviderRates, error) {
	reqURL := fmt.Sprintf("%s/latest?from=%s", c.baseURL, url.QueryEscape(string(base)))
	return fetchLatest(ctx, c.httpGetter, reqURL)
}

// fetchLatest performs the request and decodes the native {base, date, rates} shape
func fetchLatest(ctx context.Context, g httpGetter, reqURL string) (*entity.ProviderRates, error) {
	status, body, err := g.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	if !isSuccess(status) {
		return nil, fmt.Errorf("%w: API returned error status: %d", entity.ErrProviderUnavailable, status)
	}

	var resp latestRatesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", entity.ErrMalformedPayload, err)
	}
	if len(resp.Rates) == 0 {
		return nil, fmt.Errorf("%w: no rates in response", entity.ErrMalformedPayload)
	}

	return &entity.ProviderRates{
		Base:  entity.NormalizeCurrencyCode(resp.Base),
		Date:  resp.Date,
		Rates: toRates(resp.Rates),
	}, nil
}
