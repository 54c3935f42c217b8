package service

import (
	"context"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
)

// IdentityChecker resolves a bearer credential into an identity.
// Invalid or missing credentials yield entity.Anonymous, never an error.
type IdentityChecker interface {
	Check(ctx context.Context, credential string) entity.Identity
}
