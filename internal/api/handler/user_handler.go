package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipe-app/recipe-api/internal/api/metrics"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

// UserHandler serves public registration and the caller's own profile.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues("self").Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Me returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe changes the authenticated user's email, name or password.
// PUT and PATCH share this handler; absent fields are kept.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      updateMeRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /users/me [put]
// @Router       /users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateMeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.users.UpdateUser(c.Request().Context(), user.ID, ports.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}
