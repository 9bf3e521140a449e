package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scholarspoint/coaching-admin/internal/api/middleware"
	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call when it is absent.
func ctxIdentity(c echo.Context) (*domain.User, error) {
	identity := middleware.Identity(c)
	if identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}

// listInput builds the shared list parameters from the query string. Only
// the named fieldKeys are read into the criteria map, so a view controls
// which fields it filters on. Dates accept 2006-01-02 and are inclusive.
func listInput(c echo.Context, identity *domain.User, fieldKeys ...string) ports.ListInput {
	input := ports.ListInput{
		Role:         identity.Role,
		CounsellorID: identity.ID,
		Search:       c.QueryParam("search"),
		Fields:       make(map[string]string),
	}

	for _, key := range fieldKeys {
		if v := c.QueryParam(key); v != "" {
			input.Fields[key] = v
		}
	}

	if v := c.QueryParam("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			input.From = t
		}
	}
	if v := c.QueryParam("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			// inclusive of the whole end day
			input.To = t.Add(24*time.Hour - time.Nanosecond)
		}
	}

	input.Page, _ = strconv.Atoi(c.QueryParam("page"))
	input.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return input
}
