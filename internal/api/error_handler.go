package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/recipe-app/recipe-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes and renders {"error": "..."}. Unexpected errors are
// logged and reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidCredentials.Error()}
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, errorResponse{Error: domain.ErrDuplicateEmail.Error()}
	case errors.Is(err, domain.ErrMissingEmail):
		return http.StatusBadRequest, errorResponse{Error: domain.ErrMissingEmail.Error()}
	case errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidPrice.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrUnauthorized.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound, errorResponse{Error: "recipe not found"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
