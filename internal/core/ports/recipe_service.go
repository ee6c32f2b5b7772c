package ports

import (
	"context"

	"github.com/recipe-app/recipe-api/internal/core/domain"
)

// RecipeInput carries the fields of a new recipe.
type RecipeInput struct {
	Title       string
	Description string
	TimeMinutes int
	Price       domain.Price
	Link        string
}

// RecipePatch holds optional changes; nil fields are left untouched.
type RecipePatch struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *domain.Price
	Link        *string
}

// RecipeService defines owner-scoped recipe use-cases. The ownerID always
// comes from the authenticated user.
type RecipeService interface {
	Create(ctx context.Context, ownerID string, input RecipeInput) (*domain.Recipe, error)
	List(ctx context.Context, ownerID string) ([]*domain.Recipe, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Recipe, error)
	Update(ctx context.Context, ownerID, id string, patch RecipePatch) (*domain.Recipe, error)
	Delete(ctx context.Context, ownerID, id string) error
}
