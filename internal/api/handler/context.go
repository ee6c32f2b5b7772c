package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipe-app/recipe-api/internal/api/middleware"
	"github.com/recipe-app/recipe-api/internal/core/domain"
)

// ctxUser returns the user injected by the Auth middleware. A missing user
// means the route was registered without Auth and is treated as anonymous.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.UserFrom(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication credentials were not provided")
	}
	return user, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
