package ports

import (
	"context"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
)

// AuthService implements registration and the session-backed login flow.
type AuthService interface {
	Register(ctx context.Context, username, password, email, role, centre string) (*domain.User, error)
	// Login returns a signed token and the authenticated user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout tears down the session behind the token. Idempotent.
	Logout(ctx context.Context, token string)
	// Verify resolves a signed token to its identity, or an error when the
	// token is invalid or the backing session has expired.
	Verify(token string) (*domain.User, error)
}
