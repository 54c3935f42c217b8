package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/service"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
)

// BearerToken extracts the token of an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// IdentityMiddleware resolves the caller's identity and stores it in the request context
func IdentityMiddleware(checker service.IdentityChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := entity.Anonymous
			if token := BearerToken(r); token != "" && checker != nil {
				identity = checker.Check(r.Context(), token)
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
		})
	}
}

// GetIdentity returns the identity resolved by IdentityMiddleware
func GetIdentity(ctx context.Context) entity.Identity {
	identity, ok := ctx.Value(identityKey).(entity.Identity)
	if !ok {
		return entity.Anonymous
	}
	return identity
}

// RequireAuth rejects anonymous callers with 401
func RequireAuth(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !GetIdentity(r.Context()).Authenticated {
				log.Warn("Unauthenticated request rejected", map[string]interface{}{
					"request_id": GetRequestID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
				})
				writeJSONError(w, http.StatusUnauthorized, "Authentication required", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
