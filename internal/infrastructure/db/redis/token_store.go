package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

const tokenKeyPrefix = "auth:token:"

// TokenStore keeps one token per user under auth:token:<user_id>.
// A zero ttl stores tokens without expiry.
type TokenStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ ports.TokenStore = (*TokenStore)(nil)

func NewTokenStore(client redis.Cmdable, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

func (s *TokenStore) Get(ctx context.Context, userID string) (string, error) {
	tok, err := s.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get token: %w", err)
	}
	return tok, nil
}

// SetIfAbsent stores token only when the user has none. It reports whether
// the value was written.
func (s *TokenStore) SetIfAbsent(ctx context.Context, userID, token string) (bool, error) {
	ok, err := s.client.SetNX(ctx, key(userID), token, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis set token: %w", err)
	}
	return ok, nil
}

func (s *TokenStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete token: %w", err)
	}
	return nil
}

func key(userID string) string {
	return tokenKeyPrefix + userID
}
