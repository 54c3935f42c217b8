// Package auth resolves bearer tokens into operator identities
package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/middleware"
)

// Claims are the access token claims issued by the hosted auth backend
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTIdentityChecker validates HS256 access tokens against a shared secret
type JWTIdentityChecker struct {
	secret []byte
	logger logger.Logger
}

// NewJWTIdentityChecker creates a checker for tokens signed with secret
func NewJWTIdentityChecker(secret string, log logger.Logger) *JWTIdentityChecker {
	if log == nil {
		log = logger.GetDefaultLogger()
	}
	return &JWTIdentityChecker{
		secret: []byte(secret),
		logger: log,
	}
}

// Check returns the identity behind credential, or entity.Anonymous when it is not valid
func (c *JWTIdentityChecker) Check(ctx context.Context, credential string) entity.Identity {
	if credential == "" || len(c.secret) == 0 {
		return entity.Anonymous
	}

	claims, err := c.parse(credential)
	if err != nil {
		c.logger.Debug("Rejected access token", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"error":      err.Error(),
		})
		return entity.Anonymous
	}

	return entity.Identity{
		Authenticated: true,
		User: &entity.User{
			ID:    claims.Subject,
			Email: claims.Email,
		},
	}
}

func (c *JWTIdentityChecker) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}
