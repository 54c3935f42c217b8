// Package api holds the clients of the external exchange rate providers
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
)

// DefaultTimeout bounds every provider call so a hung provider cannot stall the cascade
const DefaultTimeout = 5 * time.Second

// maxBodyBytes caps how much of a provider response is read
const maxBodyBytes = 4 << 20

// httpGetter performs bounded GET requests against a provider
type httpGetter struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

func newHTTPGetter(baseURL string, httpClient *http.Client, timeout time.Duration) httpGetter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}

	return httpGetter{
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    timeout,
	}
}

// get issues a GET for reqURL and returns the status code and body.
// Transport failures are reported as entity.ErrProviderUnavailable.
func (g httpGetter) get(ctx context.Context, reqURL string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to execute request: %v", entity.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: failed to read response body: %v", entity.ErrProviderUnavailable, err)
	}

	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
