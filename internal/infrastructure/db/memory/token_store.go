package memory

import (
	"context"
	"sync"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

// TokenStore keeps auth tokens in process memory. Tokens never expire.
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

var _ ports.TokenStore = (*TokenStore)(nil)

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]string)}
}

func (s *TokenStore) Get(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.tokens[userID]
	if !ok {
		return "", domain.ErrTokenNotFound
	}
	return tok, nil
}

func (s *TokenStore) SetIfAbsent(_ context.Context, userID, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[userID]; ok {
		return false, nil
	}
	s.tokens[userID] = token
	return true, nil
}

func (s *TokenStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, userID)
	return nil
}
