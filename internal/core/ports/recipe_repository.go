package ports

import (
	"context"

	"github.com/recipe-app/recipe-api/internal/core/domain"
)

// RecipeRepository persists recipes. Every lookup is scoped to an owner: a
// recipe that belongs to someone else is reported as domain.ErrRecipeNotFound.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error)
	// ListByOwner returns the owner's recipes, most recently created first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Recipe, error)
	FindByID(ctx context.Context, ownerID, id string) (*domain.Recipe, error)
	// Update matches on both recipe.ID and recipe.OwnerID.
	Update(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error)
	Delete(ctx context.Context, ownerID, id string) error
}
