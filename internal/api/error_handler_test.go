package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error envelope: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"token invalid", domain.ErrTokenInvalid, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"wrong token type", domain.ErrTokenWrongType, http.StatusUnauthorized, "INVALID_TOKEN_TYPE"},
		{"insufficient role", domain.ErrInsufficientRole, http.StatusForbidden, "INSUFFICIENT_PERMISSIONS"},
		{"not the owner", domain.ErrStoreNotOwned, http.StatusForbidden, "STORE_OWNERSHIP_REQUIRED"},
		{"second store", domain.ErrVendorHasStore, http.StatusConflict, "STORE_ALREADY_EXISTS_FOR_VENDOR"},
		{"name collision", domain.ErrStoreNameTaken, http.StatusConflict, "STORE_NAME_NOT_UNIQUE"},
		{"store missing", domain.ErrStoreNotFound, http.StatusNotFound, "STORE_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := renderError(t, tt.err)
			if status != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, status)
			}
			if body.Error != tt.wantCode {
				t.Fatalf("expected code %s, got %s", tt.wantCode, body.Error)
			}
		})
	}
}

func TestErrorHandler_DetailOverride(t *testing.T) {
	status, body := renderError(t, domain.ErrInvalidInput.WithDetail("password must be at least 8 characters"))
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body.Detail != "password must be at least 8 characters" {
		t.Fatalf("detail not carried through: %+v", body)
	}
}

func TestErrorHandler_EchoErrors(t *testing.T) {
	status, body := renderError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))
	if status != http.StatusNotFound || body.Error != "NOT_FOUND" {
		t.Fatalf("unexpected mapping: %d %+v", status, body)
	}

	status, body = renderError(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))
	if status != http.StatusMethodNotAllowed || body.Error != "METHOD_NOT_ALLOWED" {
		t.Fatalf("unexpected mapping: %d %+v", status, body)
	}

	status, body = renderError(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if status != http.StatusTeapot || body.Error != "HTTP_ERROR" {
		t.Fatalf("unexpected mapping: %d %+v", status, body)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque500(t *testing.T) {
	status, body := renderError(t, errors.New("mongo: connection reset by peer"))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if body.Error != "INTERNAL_ERROR" {
		t.Fatalf("expected INTERNAL_ERROR, got %s", body.Error)
	}
	// The real cause stays in the logs, never in the response.
	if body.Detail != "internal server error" {
		t.Fatalf("internal detail leaked: %+v", body)
	}
}

func TestErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.NoContent(http.StatusNoContent); err != nil {
		t.Fatalf("committing response: %v", err)
	}
	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrStoreNotFound, c)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("handler must not rewrite a committed response, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("handler must not write to a committed response: %s", rec.Body.String())
	}
}
