package ports

import "context"

// TokenStore binds at most one auth token to each user.
type TokenStore interface {
	// Get returns the user's token or domain.ErrTokenNotFound.
	Get(ctx context.Context, userID string) (string, error)
	// SetIfAbsent stores token for userID unless one is already stored.
	// It reports whether token was stored.
	SetIfAbsent(ctx context.Context, userID, token string) (bool, error)
	Delete(ctx context.Context, userID string) error
}
