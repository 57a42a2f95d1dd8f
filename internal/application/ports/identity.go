package ports

import (
	"context"

	"github.com/rosterhq/roster/internal/domain"
)

// IdentityParams describes the credentialed identity created alongside a
// local account. Password is write-only and never read back.
type IdentityParams struct {
	UID         string
	Email       string
	Password    string
	DisplayName string
}

// IdentityProvider wraps the external authentication service. Errors are
// opaque provider errors; callers do not interpret them.
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, params IdentityParams) error
	DeleteIdentity(ctx context.Context, uid string) error
	SetCustomClaims(ctx context.Context, uid string, role domain.Role) error
}

// TokenVerifier is the opaque "verify token, get subject id" capability the
// HTTP layer uses for authentication.
type TokenVerifier interface {
	Verify(tokenString string) (subjectID string, err error)
}
