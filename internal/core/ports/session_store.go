package ports

import (
	"context"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
)

// SessionStore persists sessions so they survive a process restart. Writers
// overwrite unconditionally; concurrent writers are not coordinated (last
// writer wins).
type SessionStore interface {
	// Save writes the session's identity and expiry keys.
	Save(ctx context.Context, s *domain.Session) error
	// Delete removes both keys for the token. Deleting an absent session is
	// not an error.
	Delete(ctx context.Context, token string) error
	// LoadAll returns every stored session, expired ones included; the
	// caller decides what to do with them. A corrupt entry is skipped, not
	// an error.
	LoadAll(ctx context.Context) ([]*domain.Session, error)
}
