package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

func TestUserHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			if input.Email != "test@example.com" || input.Password != "testpass123" || input.Name != "Test Name" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "1", Email: input.Email, Name: input.Name, PasswordHash: "hash"}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/users",
		`{"email":"test@example.com","password":"testpass123","name":"Test Name"}`, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "test@example.com" || resp["name"] != "Test Name" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["password"]; ok {
		t.Fatalf("password must not be returned")
	}
	if len(resp) != 2 {
		t.Fatalf("expected only email and name, got %+v", resp)
	}
}

func TestUserHandler_Register_ShortPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newJSONContext(e, http.MethodPost, "/users", `{"email":"test@example.com","password":"pw","name":"Test"}`, nil)
	err := h.Register(c)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["password"]; !ok {
		t.Fatalf("expected password field error, got %+v", verr.Fields)
	}
}

func TestUserHandler_Register_MissingEmail(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	c, _ := newJSONContext(e, http.MethodPost, "/users", `{"password":"testpass123"}`, nil)
	err := h.Register(c)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["email"] != "email is required" {
		t.Fatalf("unexpected email message: %+v", verr.Fields)
	}
}

func TestUserHandler_Register_DuplicateEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	h := NewUserHandler(stub)

	c, _ := newJSONContext(e, http.MethodPost, "/users", `{"email":"test@example.com","password":"testpass123"}`, nil)
	if err := h.Register(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	c, _ := newJSONContext(e, http.MethodPost, "/users", "not-json", nil)
	err := h.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Me(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	c, rec := newJSONContext(e, http.MethodGet, "/users/me", "", &domain.User{ID: "7", Email: "me@example.com", Name: "Me"})
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Email != "me@example.com" || resp.Name != "Me" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Me_Anonymous(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	c, _ := newJSONContext(e, http.MethodGet, "/users/me", "", nil)
	err := h.Me(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_UpdateMe_PartialFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
			if id != "7" {
				t.Fatalf("unexpected id: %s", id)
			}
			if input.Name == nil || *input.Name != "New Name" {
				t.Fatalf("expected name change, got %+v", input)
			}
			if input.Email != nil || input.Password != nil {
				t.Fatalf("absent fields must stay nil: %+v", input)
			}
			if input.IsStaff != nil || input.IsSuperuser != nil || input.IsActive != nil {
				t.Fatalf("flags cannot be changed through /users/me: %+v", input)
			}
			return &domain.User{ID: id, Email: "me@example.com", Name: *input.Name}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(e, http.MethodPatch, "/users/me",
		`{"name":"New Name","is_staff":true}`, &domain.User{ID: "7", Email: "me@example.com"})
	if err := h.UpdateMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
