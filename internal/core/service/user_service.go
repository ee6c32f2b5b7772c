package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

// UserService creates and manages accounts on top of a credential store.
type UserService struct {
	repo   ports.UserRepository
	tokens ports.TokenStore
	logger zerolog.Logger
	cost   int
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(repo ports.UserRepository, tokens ports.TokenStore, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, logger: logger, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

// CreateUser normalises the email, hashes the password and stores the user.
// An empty password yields an unusable hash.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domain.ErrMissingEmail
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		IsActive:     active,
		IsStaff:      input.IsStaff,
		IsSuperuser:  input.IsSuperuser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Bool("staff", created.IsStaff).Msg("user created")
	return created, nil
}

// CreateSuperuser creates a regular user and then grants staff and superuser.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.CreateUser(ctx, ports.CreateUserInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("promote superuser: %w", err)
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("superuser created")
	return updated, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// UpdateUser applies the non-nil fields of input. Changing the password
// re-hashes it; deactivating keeps the token but ResolveToken rejects it.
func (s *UserService) UpdateUser(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := domain.NormalizeEmail(*input.Email)
		if email == "" {
			return nil, domain.ErrMissingEmail
		}
		user.Email = email
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Password != nil {
		hash, err := s.hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsStaff != nil {
		user.IsStaff = *input.IsStaff
	}
	if input.IsSuperuser != nil {
		user.IsSuperuser = *input.IsSuperuser
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// DeleteUser removes the user (storage cascades to its recipes) and revokes
// its token.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.tokens.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrTokenNotFound) {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to revoke token of deleted user")
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	if password == "" {
		return unusablePassword()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.NewValidationError("password", "password must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func unusablePassword() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("unusable password: %w", err)
	}
	return domain.UnusablePasswordPrefix + hex.EncodeToString(b), nil
}
