package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

// ContextKeyUser is where Auth stores the authenticated *domain.User.
const ContextKeyUser = "user"

// Accepted Authorization schemes.
var authSchemes = []string{"token", "bearer"}

// Auth resolves the Authorization header to an active user and stores it
// under ContextKeyUser.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := tokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Token")
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication credentials were not provided")
			}

			user, err := auth.ResolveToken(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Token")
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

func tokenFromHeader(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	for _, s := range authSchemes {
		if strings.EqualFold(scheme, s) {
			return token, true
		}
	}
	return "", false
}

// UserFrom returns the user stored by Auth, or nil.
func UserFrom(c echo.Context) *domain.User {
	u, _ := c.Get(ContextKeyUser).(*domain.User)
	return u
}
