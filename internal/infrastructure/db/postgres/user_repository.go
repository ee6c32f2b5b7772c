package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

type UserRepository struct {
	db DBTX
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, is_active, is_staff, is_superuser, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Email == "" {
		return nil, domain.ErrMissingEmail
	}

	query :=
		`INSERT INTO users (email, name, password_hash, is_active, is_staff, is_superuser, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.IsActive, user.IsStaff, user.IsSuperuser,
		user.CreatedAt, user.UpdatedAt))
	if err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	key, ok := parseID(user.ID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if user.Email == "" {
		return nil, domain.ErrMissingEmail
	}

	query :=
		`UPDATE users SET email = $2, name = $3, password_hash = $4,
		 is_active = $5, is_staff = $6, is_superuser = $7, updated_at = $8
		 WHERE id = $1
		 RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, key,
		user.Email, user.Name, user.PasswordHash, user.IsActive, user.IsStaff, user.IsSuperuser, user.UpdatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		if pgErrorCode(err) == codeUniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// Delete removes the user; recipes go with it through ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return domain.ErrUserNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, key)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
