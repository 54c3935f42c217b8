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

const (
	// ExchangeRateV6BaseURL is the keyed ExchangeRate-API endpoint
	ExchangeRateV6BaseURL = "https://v6.exchangerate-api.com"

	// MinAPIKeyLength is the length a key must exceed to count as configured.
	// Shorter values are placeholders.
	MinAPIKeyLength = 20
)

// ExchangeRateV6Client fetches rates from the keyed ExchangeRate-API v6 tier
type ExchangeRateV6Client struct {
	httpGetter
	apiKey string
}

// NewExchangeRateV6Client creates a client for the keyed tier
func NewExchangeRateV6Client(apiKey, baseURL string, httpClient *http.Client, timeout time.Duration) *ExchangeRateV6Client {
	if baseURL == "" {
		baseURL = ExchangeRateV6BaseURL
	}

	return &ExchangeRateV6Client{
		httpGetter: newHTTPGetter(baseURL, httpClient, timeout),
		apiKey:     apiKey,
	}
}

// exchangeRateV6Response is the payload of GET /v6/{key}/latest/{base}
type exchangeRateV6Response struct {
	Result             string             `json:"result"`
	ErrorType          string             `json:"error-type"`
	BaseCode           string             `json:"base_code"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	ConversionRates    map[string]float64 `json:"conversion_rates"`
}

// Configured reports whether the API key is long enough to be a real key
func (c *ExchangeRateV6Client) Configured() bool {
	return KeyConfigured(c.apiKey)
}

// KeyConfigured reports whether key is long enough to be a real ExchangeRate-API key
func KeyConfigured(key string) bool {
	return len(key) > MinAPIKeyLength
}

func (c *ExchangeRateV6Client) Code() entity.Provenance {
	return entity.ProvenanceExchangeRateV6
}

func (c *ExchangeRateV6Client) Name() string {
	return "ExchangeRate-API v6"
}

// Fetch retrieves the latest rates for base. The provider is skipped without a network call
// when the key is not configured.
func (c *ExchangeRateV6Client) Fetch(ctx context.Context, base entity.CurrencyCode) (*entity.ProviderRates, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: api key missing or too short", entity.ErrProviderNotConfigured)
	}

	reqURL := fmt.Sprintf("%s/v6/%s/latest/%s", c.baseURL, url.PathEscape(c.apiKey), url.PathEscape(string(base)))

	status, body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp exchangeRateV6Response
	decodeErr := json.Unmarshal(body, &resp)

	if resp.ErrorType == "invalid-key" {
		return nil, fmt.Errorf("%w: api key rejected (invalid-key)", entity.ErrProviderNotConfigured)
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("%w: API returned error status: %d", entity.ErrProviderUnavailable, status)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", entity.ErrMalformedPayload, decodeErr)
	}
	if resp.Result != "success" {
		return nil, fmt.Errorf("%w: result %q, error-type %q", entity.ErrProviderUnavailable, resp.Result, resp.ErrorType)
	}
	if len(resp.ConversionRates) == 0 {
		return nil, fmt.Errorf("%w: no conversion rates in response", entity.ErrMalformedPayload)
	}

	date := ""
	if resp.TimeLastUpdateUnix > 0 {
		date = time.Unix(resp.TimeLastUpdateUnix, 0).UTC().Format("2006-01-02")
	}

	return &entity.ProviderRates{
		Base:  entity.NormalizeCurrencyCode(resp.BaseCode),
		Date:  date,
		Rates: toRates(resp.ConversionRates),
	}, nil
}

func toRates(in map[string]float64) entity.Rates {
	out := make(entity.Rates, len(in))
	for code, rate := range in {
		out[entity.NormalizeCurrencyCode(code)] = rate
	}
	return out
}
