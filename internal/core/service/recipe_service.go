package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

type RecipeService struct {
	repo   ports.RecipeRepository
	logger zerolog.Logger
}

var _ ports.RecipeService = (*RecipeService)(nil)

func NewRecipeService(repo ports.RecipeRepository, logger zerolog.Logger) *RecipeService {
	return &RecipeService{repo: repo, logger: logger}
}

// Create stores a new recipe owned by ownerID.
func (s *RecipeService) Create(ctx context.Context, ownerID string, input ports.RecipeInput) (*domain.Recipe, error) {
	now := time.Now().UTC()
	recipe := &domain.Recipe{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Link:        strings.TrimSpace(input.Link),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, recipe)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create recipe")
		return nil, err
	}

	s.logger.Info().Str("recipe_id", created.ID).Str("owner_id", ownerID).Msg("recipe created")
	return created, nil
}

func (s *RecipeService) List(ctx context.Context, ownerID string) ([]*domain.Recipe, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *RecipeService) Get(ctx context.Context, ownerID, id string) (*domain.Recipe, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

// Update applies the non-nil fields of patch to the owner's recipe.
func (s *RecipeService) Update(ctx context.Context, ownerID, id string, patch ports.RecipePatch) (*domain.Recipe, error) {
	recipe, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		recipe.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.TimeMinutes != nil {
		recipe.TimeMinutes = *patch.TimeMinutes
	}
	if patch.Price != nil {
		recipe.Price = *patch.Price
	}
	if patch.Link != nil {
		recipe.Link = strings.TrimSpace(*patch.Link)
	}
	recipe.UpdatedAt = time.Now().UTC()

	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, recipe)
}

func (s *RecipeService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.logger.Info().Str("recipe_id", id).Str("owner_id", ownerID).Msg("recipe deleted")
	return nil
}
