// Package guard decides whether an identity may reach a view. The decision
// is pure; the HTTP middleware translates it into responses.
package guard

import "github.com/scholarspoint/coaching-admin/internal/core/domain"

// Decision is the outcome of evaluating a request against the guard.
type Decision int

const (
	// Allow admits the request.
	Allow Decision = iota
	// RedirectToLogin is issued when no identity is present.
	RedirectToLogin
	// RedirectToDefaultAuthenticated is issued when an identity exists but
	// its role is not in the allow-list.
	RedirectToDefaultAuthenticated
)

// Result carries the decision plus the originally requested path so the
// login flow can return the user there.
type Result struct {
	Decision Decision
	Next     string
}

// Evaluate gates a request. An empty allowed set means any authenticated
// role is acceptable.
func Evaluate(identity *domain.User, allowed []string, requestedPath string) Result {
	if identity == nil {
		return Result{Decision: RedirectToLogin, Next: requestedPath}
	}
	if len(allowed) == 0 {
		return Result{Decision: Allow, Next: requestedPath}
	}
	for _, role := range allowed {
		if identity.Role == role {
			return Result{Decision: Allow, Next: requestedPath}
		}
	}
	return Result{Decision: RedirectToDefaultAuthenticated, Next: requestedPath}
}
