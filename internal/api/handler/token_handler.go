package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipe-app/recipe-api/internal/api/metrics"
	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

type TokenHandler struct {
	auth ports.AuthService
}

func NewTokenHandler(auth ports.AuthService) *TokenHandler {
	return &TokenHandler{auth: auth}
}

// Create exchanges email and password for the user's auth token. Repeated
// calls return the same token.
//
// @Summary      Obtain an auth token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Router       /users/token [post]
func (h *TokenHandler) Create(c echo.Context) error {
	var req tokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return err
	}

	token, err := h.auth.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.AuthAttemptsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}
