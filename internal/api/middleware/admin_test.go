package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/recipe-app/recipe-api/internal/core/domain"
)

func runAdmin(user *domain.User) (*httptest.ResponseRecorder, bool, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(ContextKeyUser, user)
	}

	called := false
	handler := RequireAdmin()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, called, err
}

func TestRequireAdmin_AllowsActiveStaff(t *testing.T) {
	rec, called, err := runAdmin(&domain.User{IsActive: true, IsStaff: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}

func TestRequireAdmin_ForbidsRegularUser(t *testing.T) {
	rec, called, err := runAdmin(&domain.User{IsActive: true})
	if called {
		t.Fatalf("should not reach next handler")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("middleware should leave the response to the error handler, got %q", rec.Body.String())
	}
}

func TestRequireAdmin_ForbidsInactiveStaff(t *testing.T) {
	_, called, err := runAdmin(&domain.User{IsStaff: true})
	if called {
		t.Fatalf("should not reach next handler")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireAdmin_Anonymous(t *testing.T) {
	rec, called, err := runAdmin(nil)
	if called {
		t.Fatalf("should not reach next handler")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("middleware should leave the response to the error handler, got %q", rec.Body.String())
	}
}
