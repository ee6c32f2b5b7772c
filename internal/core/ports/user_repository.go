package ports

import (
	"context"

	"github.com/recipe-app/recipe-api/internal/core/domain"
)

// UserRepository is the credential store: user records keyed by id with a
// unique index on email.
type UserRepository interface {
	// Create inserts a user and returns it with its storage-assigned ID.
	// It fails with domain.ErrMissingEmail or domain.ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns every user in creation order.
	List(ctx context.Context) ([]*domain.User, error)
	// Update persists email, name, password hash and capability flags.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes the user together with every recipe it owns.
	Delete(ctx context.Context, id string) error
}
