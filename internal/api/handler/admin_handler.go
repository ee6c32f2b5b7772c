package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipe-app/recipe-api/internal/api/metrics"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

// AdminHandler exposes user management to staff accounts.
type AdminHandler struct {
	users ports.UserService
}

func NewAdminHandler(users ports.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers returns every account ordered by id.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   adminUserResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]adminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toAdminUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateUser adds an account with explicit flags. An empty password leaves
// the account unable to log in.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      adminCreateUserRequest  true  "Account"
// @Success      201   {object}  adminUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req adminCreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		IsActive:    req.IsActive,
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues("admin").Inc()
	return c.JSON(http.StatusCreated, toAdminUserResponse(user))
}

// GetUser returns one account.
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  adminUserResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.users.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminUserResponse(user))
}

// UpdateUser changes the given fields of an account.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string                  true  "User ID"
// @Param        body  body      adminUpdateUserRequest  true  "Fields to change"
// @Success      200   {object}  adminUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req adminUpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateUser(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Email:       req.Email,
		Name:        req.Name,
		Password:    req.Password,
		IsActive:    req.IsActive,
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminUserResponse(user))
}

// DeleteUser removes an account together with its recipes and token.
//
// @Summary      Delete a user
// @Tags         admin
// @Security     TokenAuth
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.users.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
