package handler

import (
	"encoding/json"
	"time"

	"github.com/recipe-app/recipe-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// --- Users ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=5,max=72"`
	Name     string `json:"name"     validate:"max=255"`
}

type updateMeRequest struct {
	Email    *string `json:"email"    validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=5,max=72"`
	Name     *string `json:"name"     validate:"omitempty,max=255"`
}

type userResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{Email: u.Email, Name: u.Name}
}

type tokenRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// --- Admin ---

type adminCreateUserRequest struct {
	Email       string `json:"email"        validate:"required,email,max=255"`
	Password    string `json:"password"     validate:"omitempty,min=5,max=72"`
	Name        string `json:"name"         validate:"max=255"`
	IsActive    *bool  `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

type adminUpdateUserRequest struct {
	Email       *string `json:"email"        validate:"omitempty,email,max=255"`
	Password    *string `json:"password"     validate:"omitempty,min=5,max=72"`
	Name        *string `json:"name"         validate:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
}

type adminUserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toAdminUserResponse(u *domain.User) adminUserResponse {
	return adminUserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// --- Recipes ---

// recipeRequest is the body of POST /recipes and PUT /recipes/:id.
// Price accepts a JSON number or a numeric string.
type recipeRequest struct {
	Title       *string      `json:"title"        validate:"required,max=255"`
	Description *string      `json:"description"`
	TimeMinutes *int         `json:"time_minutes" validate:"required,min=0"`
	Price       *json.Number `json:"price"        validate:"required,price" swaggertype:"string" example:"5.50"`
	Link        *string      `json:"link"         validate:"omitempty,max=255"`
}

// recipePatchRequest is the body of PATCH /recipes/:id. Absent fields are kept.
type recipePatchRequest struct {
	Title       *string      `json:"title"        validate:"omitempty,max=255"`
	Description *string      `json:"description"`
	TimeMinutes *int         `json:"time_minutes" validate:"omitempty,min=0"`
	Price       *json.Number `json:"price"        validate:"omitempty,price" swaggertype:"string" example:"5.50"`
	Link        *string      `json:"link"         validate:"omitempty,max=255"`
}

type recipeListItem struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	TimeMinutes int          `json:"time_minutes"`
	Price       domain.Price `json:"price" swaggertype:"string" example:"5.50"`
	Link        string       `json:"link"`
}

type recipeDetail struct {
	recipeListItem
	Description string `json:"description"`
}

func toRecipeListItem(r *domain.Recipe) recipeListItem {
	return recipeListItem{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
	}
}

func toRecipeDetail(r *domain.Recipe) recipeDetail {
	return recipeDetail{recipeListItem: toRecipeListItem(r), Description: r.Description}
}

// --- Health ---

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}
