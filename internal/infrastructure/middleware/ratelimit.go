package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// DefaultRateLimit is the per-client request budget when none is configured
const DefaultRateLimit = "100-M"

// NewRateLimiter builds an in-memory per-IP limiter from a formatted rate such as "100-M"
func NewRateLimiter(formatted string) (*limiter.Limiter, error) {
	if formatted == "" {
		formatted = DefaultRateLimit
	}

	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}

	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimitMiddleware rejects clients that exceed the limiter's budget with 429
func RateLimitMiddleware(l *limiter.Limiter, log logger.Logger) func(http.Handler) http.Handler {
	mw := stdlib.NewMiddleware(l,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			log.Warn("Rate limit exceeded", map[string]interface{}{
				"request_id":  GetRequestID(r.Context()),
				"remote_addr": r.RemoteAddr,
				"path":        r.URL.Path,
			})
			writeJSONError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.", GetRequestID(r.Context()))
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error("Rate limit check failed", map[string]interface{}{
				"request_id": GetRequestID(r.Context()),
				"error":      err.Error(),
			})
			writeJSONError(w, http.StatusInternalServerError, "Internal server error during rate limit check", GetRequestID(r.Context()))
		}),
	)

	return mw.Handler
}

// writeJSONError writes the error body shared with the handlers
func writeJSONError(w http.ResponseWriter, status int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":    false,
		"error":      message,
		"status":     status,
		"request_id": requestID,
	})
}
