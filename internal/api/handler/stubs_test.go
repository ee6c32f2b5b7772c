package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/recipe-app/recipe-api/internal/api/middleware"
	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

type stubUserService struct {
	createFn     func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	superuserFn  func(ctx context.Context, email, password string) (*domain.User, error)
	getFn        func(ctx context.Context, id string) (*domain.User, error)
	listFn       func(ctx context.Context) ([]*domain.User, error)
	updateFn     func(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (s *stubUserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) CreateSuperuser(ctx context.Context, email, password string) (*domain.User, error) {
	return s.superuserFn(ctx, email, password)
}

func (s *stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) UpdateUser(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubAuthService struct {
	authenticateFn func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubAuthService) ResolveToken(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUnauthorized
}

type stubRecipeService struct {
	createFn func(ctx context.Context, ownerID string, input ports.RecipeInput) (*domain.Recipe, error)
	listFn   func(ctx context.Context, ownerID string) ([]*domain.Recipe, error)
	getFn    func(ctx context.Context, ownerID, id string) (*domain.Recipe, error)
	updateFn func(ctx context.Context, ownerID, id string, patch ports.RecipePatch) (*domain.Recipe, error)
	deleteFn func(ctx context.Context, ownerID, id string) error
}

func (s *stubRecipeService) Create(ctx context.Context, ownerID string, input ports.RecipeInput) (*domain.Recipe, error) {
	return s.createFn(ctx, ownerID, input)
}

func (s *stubRecipeService) List(ctx context.Context, ownerID string) ([]*domain.Recipe, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubRecipeService) Get(ctx context.Context, ownerID, id string) (*domain.Recipe, error) {
	return s.getFn(ctx, ownerID, id)
}

func (s *stubRecipeService) Update(ctx context.Context, ownerID, id string, patch ports.RecipePatch) (*domain.Recipe, error) {
	return s.updateFn(ctx, ownerID, id, patch)
}

func (s *stubRecipeService) Delete(ctx context.Context, ownerID, id string) error {
	return s.deleteFn(ctx, ownerID, id)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newJSONContext builds a request context, optionally with an authenticated user.
func newJSONContext(e *echo.Echo, method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextKeyUser, user)
	}
	return c, rec
}
