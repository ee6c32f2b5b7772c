package ports

import (
	"context"

	"github.com/recipe-app/recipe-api/internal/core/domain"
)

// CreateUserInput carries the attributes accepted when creating a user.
// IsActive defaults to true when nil.
type CreateUserInput struct {
	Email       string
	Password    string
	Name        string
	IsActive    *bool
	IsStaff     bool
	IsSuperuser bool
}

// UpdateUserInput holds optional changes; nil fields are left untouched.
type UpdateUserInput struct {
	Email       *string
	Name        *string
	Password    *string
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
}

// UserService defines account management use-cases.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
