package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"watchwise/pkg/logger"
	"watchwise/pkg/utils"

	"github.com/labstack/echo/v4"
)

const validUserID = "3f2b1c4d-6e7f-4a8b-9c0d-1e2f3a4b5c6d"

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := AuthMiddleware()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, c, called
}

func TestAuthMiddleware(t *testing.T) {
	utils.InitJWT("middleware-secret")

	valid, err := utils.GenerateJWT(strings.ToUpper(validUserID), "authenticated", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	badSubject, err := utils.GenerateJWT("42", "authenticated", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	tests := []struct {
		name   string
		header string
		status int
		called bool
	}{
		{"missing header", "", http.StatusUnauthorized, false},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, false},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, false},
		{"non uuid subject", "Bearer " + badSubject, http.StatusForbidden, false},
		{"valid", "Bearer " + valid, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, c, called := runAuth(t, tt.header)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if called != tt.called {
				t.Fatalf("next called = %v, want %v", called, tt.called)
			}
			if tt.called && c.Get("user_id") != validUserID {
				t.Fatalf("user_id = %v, want canonical %s", c.Get("user_id"), validUserID)
			}
		})
	}
}

func TestCronSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		header string
		status int
	}{
		{"no secret configured", "", "Bearer ", http.StatusUnauthorized},
		{"wrong secret", "s3cret", "Bearer nope", http.StatusUnauthorized},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
		{"ok", "s3cret", "Bearer s3cret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/keepalive", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			_ = CronSecret(tt.secret)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestRequestContextCarriesRequestID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-7")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got string
	_ = RequestContext()(func(c echo.Context) error {
		got = logger.RequestIDFromContext(c.Request().Context())
		return nil
	})(c)

	if got != "req-7" {
		t.Fatalf("request id = %q, want req-7", got)
	}
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	ErrorHandler(echo.NewHTTPError(http.StatusNotFound, "route not found"), e.NewContext(req, rec))
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "NOT_FOUND") {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec = httptest.NewRecorder()
	ErrorHandler(errors.New("boom"), e.NewContext(req, rec))
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("internal errors should not leak: %d %s", rec.Code, rec.Body.String())
	}
}
