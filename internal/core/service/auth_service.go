package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

// AuthService checks credentials and issues one bearer token per user.
// Tokens are HS256-signed so garbage is rejected before touching the store,
// but clients treat them as opaque strings.
type AuthService struct {
	users     ports.UserRepository
	tokens    ports.TokenStore
	secret    []byte
	logger    zerolog.Logger
	now       func() time.Time
	dummyHash []byte
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(users ports.UserRepository, tokens ports.TokenStore, secret string, logger zerolog.Logger) *AuthService {
	// Compared against when the email is unknown so both failure paths cost
	// one bcrypt comparison.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.MinCost)
	return &AuthService{
		users:     users,
		tokens:    tokens,
		secret:    []byte(secret),
		logger:    logger,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// Authenticate returns the user's token. Unknown email, wrong password,
// unusable password and inactive account all fail with
// domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !user.HasUsablePassword() ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil ||
		!domain.CanAuthenticate(user) {
		s.logger.Debug().Str("user_id", user.ID).Msg("authentication rejected")
		return "", domain.ErrInvalidCredentials
	}

	return s.tokenFor(ctx, user)
}

// tokenAttempts bounds the get-or-create rounds in tokenFor.
const tokenAttempts = 3

// tokenFor returns the stored token or stores a fresh one. When two requests
// race, the loser reads back the winner's token. A winner's token that
// expires or is revoked before the read starts another round.
func (s *AuthService) tokenFor(ctx context.Context, user *domain.User) (string, error) {
	for i := 0; i < tokenAttempts; i++ {
		existing, err := s.tokens.Get(ctx, user.ID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, domain.ErrTokenNotFound) {
			return "", fmt.Errorf("load token: %w", err)
		}

		token, err := s.generateToken(user)
		if err != nil {
			return "", err
		}

		stored, err := s.tokens.SetIfAbsent(ctx, user.ID, token)
		if err != nil {
			return "", fmt.Errorf("store token: %w", err)
		}
		if stored {
			s.logger.Info().Str("user_id", user.ID).Msg("token issued")
			return token, nil
		}

		winner, err := s.tokens.Get(ctx, user.ID)
		if err == nil {
			return winner, nil
		}
		if !errors.Is(err, domain.ErrTokenNotFound) {
			return "", fmt.Errorf("load token: %w", err)
		}
		s.logger.Debug().Str("user_id", user.ID).Msg("token vanished after lost race, retrying")
	}
	return "", fmt.Errorf("issue token for user %s: gave up after %d attempts", user.ID, tokenAttempts)
}

// ResolveToken maps a presented token to its active owner.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	stored, err := s.tokens.Get(ctx, claims.Subject)
	if errors.Is(err, domain.ErrTokenNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !domain.CanAuthenticate(user) {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  user.ID,
		ID:       uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(s.now()),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
