package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
)

// identityKey is where Auth stores the resolved identity on the echo context.
const identityKey = "identity"

// Auth resolves the bearer token through the auth service and injects the
// identity into context. The session manager behind the service is the
// authority on expiry, so a token whose session has lapsed is rejected even
// when the JWT itself is well-formed.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := auth.Verify(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrAuthExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired, please log in again")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(identityKey, identity)
			c.Set("token", parts[1])

			return next(c)
		}
	}
}

// Identity returns the identity injected by Auth, or nil.
func Identity(c echo.Context) *domain.User {
	identity, _ := c.Get(identityKey).(*domain.User)
	return identity
}
