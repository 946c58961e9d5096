package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	return rec.Code, resp.Error
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrInvalidArgument, http.StatusBadRequest},
		{domain.ErrInvalidQuantity, http.StatusBadRequest},
		{domain.ErrInvalidPrice, http.StatusBadRequest},
		{domain.ErrInvalidStatus, http.StatusBadRequest},
		{domain.ErrProductNotFound, http.StatusNotFound},
		{domain.ErrOrderNotFound, http.StatusNotFound},
		{domain.ErrCartItemNotFound, http.StatusNotFound},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			code, _ := render(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedErrorsStillMap(t *testing.T) {
	wrapped := fmt.Errorf("update order: %w (from done to pending)", domain.ErrInvalidTransition)
	code, msg := render(t, wrapped)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if msg == "" {
		t.Fatal("expected the transition detail in the message")
	}
}

func TestHTTPErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, msg := render(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if msg != "invalid payload" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestHTTPErrorHandler_UnknownErrorsAreOpaque(t *testing.T) {
	code, msg := render(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details must not leak, got %q", msg)
	}
}
