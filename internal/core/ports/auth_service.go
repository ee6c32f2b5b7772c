package ports

import (
	"context"

	"github.com/recipe-app/recipe-api/internal/core/domain"
)

// AuthService validates credentials and resolves bearer tokens.
type AuthService interface {
	// Authenticate returns the user's token, issuing one on first use.
	Authenticate(ctx context.Context, email, password string) (string, error)
	// ResolveToken returns the active user a token belongs to.
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}
