package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	// Setup
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Context().Value(requestIDKey)
		assert.NotNil(t, requestID)

		w.Write([]byte(requestID.(string)))
	})

	middleware := RequestIDMiddleware(nextHandler)

	req := httptest.NewRequest("GET", "/api/rates", nil)
	w := httptest.NewRecorder()

	// Test with no existing request ID
	middleware.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	requestID := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, requestID, w.Body.String())

	// Test with existing request ID
	req = httptest.NewRequest("GET", "/api/rates", nil)
	req.Header.Set(RequestIDHeader, "test-id-123")
	w = httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	assert.Equal(t, "test-id-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "test-id-123", w.Body.String())
}

func TestGetRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "test-id-123")
	assert.Equal(t, "test-id-123", GetRequestID(ctx))

	assert.Equal(t, "unknown", GetRequestID(context.Background()))
}

func TestMiddlewareChain(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewJSONLogger(&buf, logger.InfoLevel)

	finalHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetRequestID(r.Context())))
	})

	chain := RequestIDMiddleware(LoggingMiddleware(log)(finalHandler))

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	req.Header.Set(RequestIDHeader, "test-id-123")
	w := httptest.NewRecorder()

	chain.ServeHTTP(w, req)

	assert.Equal(t, "test-id-123", w.Body.String())
	assert.Contains(t, buf.String(), "test-id-123", "Request ID should be in logs")
	assert.Contains(t, buf.String(), "/api/dashboard")
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("Rejects requests over budget", func(t *testing.T) {
		// Setup
		l, err := NewRateLimiter("2-M")
		require.NoError(t, err)

		handler := RateLimitMiddleware(l, logger.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		// Execute
		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("GET", "/api/rates", nil)
			req.RemoteAddr = "10.0.0.1:5555"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		// Assert
		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("Budgets are per client", func(t *testing.T) {
		l, err := NewRateLimiter("1-M")
		require.NoError(t, err)

		handler := RateLimitMiddleware(l, logger.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
			req := httptest.NewRequest("GET", "/api/rates", nil)
			req.RemoteAddr = addr
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code, addr)
		}
	})

	t.Run("Invalid rate format", func(t *testing.T) {
		_, err := NewRateLimiter("lots")
		assert.Error(t, err)
	})

	t.Run("Empty format uses default", func(t *testing.T) {
		l, err := NewRateLimiter("")
		require.NoError(t, err)
		assert.Equal(t, int64(100), l.Rate.Limit)
	})
}

type stubChecker struct {
	token string
}

func (s stubChecker) Check(_ context.Context, credential string) entity.Identity {
	if credential != s.token {
		return entity.Anonymous
	}
	return entity.Identity{Authenticated: true, User: &entity.User{ID: "op-1", Email: "op@bureau.test"}}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"Bearer token", "Bearer abc", "abc"},
		{"Lowercase scheme", "bearer abc", "abc"},
		{"Missing", "", ""},
		{"Other scheme", "Basic abc", ""},
		{"No token", "Bearer", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, BearerToken(req))
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	log := logger.NewNopLogger()
	checker := stubChecker{token: "good"}

	protected := IdentityMiddleware(checker)(RequireAuth(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())
		w.Write([]byte(identity.User.ID))
	})))

	t.Run("Authenticated request passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/inventory", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "op-1", w.Body.String())
	})

	t.Run("Anonymous request rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/inventory", nil)
		req.Header.Set("Authorization", "Bearer bad")
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Authentication required", body["error"])
	})

	t.Run("Identity defaults to anonymous", func(t *testing.T) {
		assert.Equal(t, entity.Anonymous, GetIdentity(context.Background()))
	})
}
