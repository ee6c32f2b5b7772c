package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

type RecipeRepository struct {
	db DBTX
}

var _ ports.RecipeRepository = (*RecipeRepository)(nil)

func NewRecipeRepository(db DBTX) *RecipeRepository {
	return &RecipeRepository{db: db}
}

const recipeColumns = `id, owner_id, title, description, time_minutes, price, link, created_at, updated_at`

// Prices travel as NUMERIC text ("5.50") in both directions.
func scanRecipe(row rowScanner) (*domain.Recipe, error) {
	rec := &domain.Recipe{}
	var price string
	err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.Description,
		&rec.TimeMinutes, &price, &rec.Link, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p, err := domain.ParsePrice(price)
	if err != nil {
		return nil, fmt.Errorf("decode price %q: %w", price, err)
	}
	rec.Price = p
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	owner, ok := parseID(recipe.OwnerID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	query :=
		`INSERT INTO recipes (owner_id, title, description, time_minutes, price, link, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING ` + recipeColumns

	rec, err := scanRecipe(r.db.QueryRowContext(ctx, query,
		owner, recipe.Title, recipe.Description, recipe.TimeMinutes, recipe.Price.String(), recipe.Link,
		recipe.CreatedAt, recipe.UpdatedAt))
	if err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// ListByOwner returns the owner's recipes, newest first.
func (r *RecipeRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Recipe, error) {
	owner, ok := parseID(ownerID)
	if !ok {
		return []*domain.Recipe{}, nil
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Recipe, 0)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Recipe, error) {
	owner, ok1 := parseID(ownerID)
	key, ok2 := parseID(id)
	if !ok1 || !ok2 {
		return nil, domain.ErrRecipeNotFound
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1 AND owner_id = $2`

	rec, err := scanRecipe(r.db.QueryRowContext(ctx, query, key, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	owner, ok1 := parseID(recipe.OwnerID)
	key, ok2 := parseID(recipe.ID)
	if !ok1 || !ok2 {
		return nil, domain.ErrRecipeNotFound
	}

	query :=
		`UPDATE recipes SET title = $3, description = $4, time_minutes = $5, price = $6, link = $7, updated_at = $8
		 WHERE id = $1 AND owner_id = $2
		 RETURNING ` + recipeColumns

	rec, err := scanRecipe(r.db.QueryRowContext(ctx, query, key, owner,
		recipe.Title, recipe.Description, recipe.TimeMinutes, recipe.Price.String(), recipe.Link, recipe.UpdatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *RecipeRepository) Delete(ctx context.Context, ownerID, id string) error {
	owner, ok1 := parseID(ownerID)
	key, ok2 := parseID(id)
	if !ok1 || !ok2 {
		return domain.ErrRecipeNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1 AND owner_id = $2`, key, owner)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}
