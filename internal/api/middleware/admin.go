package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipe-app/recipe-api/internal/core/domain"
)

// RequireAdmin lets through active staff users only. It must run after Auth.
// Rejections are returned as errors so the HTTP error handler renders them.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFrom(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication credentials were not provided")
			}
			if !domain.CanAccessAdmin(user) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
