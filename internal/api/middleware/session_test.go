package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
)

type stubLoader struct {
	loadFn func(ctx context.Context, id string) (*domain.Session, error)
}

func (s *stubLoader) Load(ctx context.Context, id string) (*domain.Session, error) {
	return s.loadFn(ctx, id)
}

func serveWithSession(t *testing.T, loader SessionLoader, cookie *http.Cookie) *domain.Session {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *domain.Session
	handler := Session(loader, "sid", zerolog.Nop())(func(c echo.Context) error {
		got = domain.SessionFromContext(c.Request().Context())
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return got
}

func TestSession_LoadsFromCookie(t *testing.T) {
	loader := &stubLoader{
		loadFn: func(ctx context.Context, id string) (*domain.Session, error) {
			if id != "abc" {
				t.Fatalf("unexpected id %q", id)
			}
			return domain.NewSession(id, "tok", domain.Identity{Role: domain.RoleAdmin}), nil
		},
	}

	got := serveWithSession(t, loader, &http.Cookie{Name: "sid", Value: "abc"})
	if got.Token() != "tok" || got.Role() != domain.RoleAdmin {
		t.Fatalf("unexpected session: token=%q role=%q", got.Token(), got.Role())
	}
}

func TestSession_NoCookieIsAnonymous(t *testing.T) {
	loader := &stubLoader{
		loadFn: func(ctx context.Context, id string) (*domain.Session, error) {
			t.Fatalf("loader should not be called")
			return nil, nil
		},
	}

	if got := serveWithSession(t, loader, nil); got != nil {
		t.Fatalf("expected anonymous request, got %+v", got)
	}
}

func TestSession_StoreErrorIsAnonymous(t *testing.T) {
	loader := &stubLoader{
		loadFn: func(ctx context.Context, id string) (*domain.Session, error) {
			return nil, errors.New("redis down")
		},
	}

	if got := serveWithSession(t, loader, &http.Cookie{Name: "sid", Value: "abc"}); got.Authenticated() {
		t.Fatalf("expected anonymous request")
	}
}
