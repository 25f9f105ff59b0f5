package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
)

type mockAuthenticator struct {
	tokens map[string]string
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	if id, ok := m.tokens[token]; ok {
		return id, nil
	}
	return "", apperrors.ErrInvalidToken
}

func serve(t *testing.T, mw echo.MiddlewareFunc, header string) (string, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var actor string
	err := mw(func(c echo.Context) error {
		actor = ActorID(c)
		return nil
	})(c)
	return actor, err
}

func TestAuth(t *testing.T) {
	mw := Auth(&mockAuthenticator{tokens: map[string]string{"good": "user-1"}})

	actor, err := serve(t, mw, "Bearer good")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if actor != "user-1" {
		t.Errorf("expected actor user-1, got %q", actor)
	}

	cases := map[string]error{
		"":            apperrors.ErrUnauthorized,
		"Basic abc":   apperrors.ErrInvalidToken,
		"Bearer ":     apperrors.ErrInvalidToken,
		"Bearer nope": apperrors.ErrInvalidToken,
	}
	for header, want := range cases {
		if _, err := serve(t, mw, header); !errors.Is(err, want) {
			t.Errorf("header %q: expected %v, got %v", header, want, err)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	e := echo.New()
	mw := RateLimiter(2, time.Minute)
	handler := mw(func(c echo.Context) error { return nil })

	call := func(ip, actor string) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		c := e.NewContext(req, httptest.NewRecorder())
		if actor != "" {
			c.Set(actorKey, actor)
		}
		return handler(c)
	}

	for i := 0; i < 2; i++ {
		if err := call("10.0.0.1", ""); err != nil {
			t.Fatalf("request %d: unexpected error %v", i, err)
		}
	}
	if err := call("10.0.0.1", ""); !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
	if apperrors.StatusCode(ErrRateLimited) != http.StatusTooManyRequests {
		t.Errorf("rate limit must map to 429")
	}

	if err := call("10.0.0.2", ""); err != nil {
		t.Errorf("another client must have its own budget, got %v", err)
	}

	// Authenticated callers are keyed by user, not address.
	if err := call("10.0.0.1", "user-1"); err != nil {
		t.Errorf("expected user budget to be separate, got %v", err)
	}
}
