package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scholarspoint/coaching-admin/internal/core/guard"
)

// guardResponse is the body sent alongside a redirect decision. Next carries
// the originally requested path so the login flow can return the user there.
type guardResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
	Next     string `json:"next"`
}

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// Guard gates a route group on the guard's decision. An empty role list
// admits any authenticated identity.
func Guard(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			result := guard.Evaluate(Identity(c), allowedRoles, c.Request().URL.Path)

			switch result.Decision {
			case guard.RedirectToLogin:
				return c.JSON(http.StatusUnauthorized, guardResponse{
					Error:    "authentication required",
					Redirect: loginPath,
					Next:     result.Next,
				})
			case guard.RedirectToDefaultAuthenticated:
				return c.JSON(http.StatusForbidden, guardResponse{
					Error:    "role not permitted",
					Redirect: dashboardPath,
					Next:     result.Next,
				})
			default:
				return next(c)
			}
		}
	}
}
