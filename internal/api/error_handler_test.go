package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec.Code, body.Error
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"mother name mismatch", domain.ErrMotherNameMismatch, http.StatusNotFound, "Mother name does not match !!"},
		{"student not found", domain.ErrStudentNotFound, http.StatusNotFound, "student not found"},
		{"challan not found", domain.ErrChallanNotFound, http.StatusNotFound, "challan not found"},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"expired session", domain.ErrAuthExpired, http.StatusUnauthorized, "session expired, please log in again"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := handleError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if msg != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, msg)
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("mongo: document lookup"), domain.ErrPaymentNotFound)
	code, msg := handleError(t, wrapped)
	if code != http.StatusNotFound || msg != "payment not found" {
		t.Fatalf("expected 404 payment not found, got %d %q", code, msg)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := handleError(t, echo.NewHTTPError(http.StatusBadRequest, "malformed body"))
	if code != http.StatusBadRequest || msg != "malformed body" {
		t.Fatalf("expected 400 malformed body, got %d %q", code, msg)
	}
}

func TestErrorHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	code, msg := handleError(t, errors.New("connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "something went wrong, please try again" {
		t.Fatalf("expected generic message, got %q", msg)
	}
}
