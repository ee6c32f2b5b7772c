package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

func sampleInput() ports.RecipeInput {
	return ports.RecipeInput{Title: "Sample recipe", TimeMinutes: 22, Price: domain.MustParsePrice("5.25"), Link: "http://example.com/recipe.pdf"}
}

func TestRecipeService_Create(t *testing.T) {
	repo := newStubRecipeRepo()
	svc := NewRecipeService(repo, zerolog.Nop())

	input := sampleInput()
	input.Title = "  Sample recipe  "
	rec, err := svc.Create(context.Background(), "1", input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.OwnerID != "1" || rec.Title != "Sample recipe" || rec.Price != 525 {
		t.Fatalf("unexpected recipe: %+v", rec)
	}
	if rec.CreatedAt.IsZero() || !rec.CreatedAt.Equal(rec.UpdatedAt) {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestRecipeService_Create_Invalid(t *testing.T) {
	repo := newStubRecipeRepo()
	svc := NewRecipeService(repo, zerolog.Nop())

	cases := map[string]func(*ports.RecipeInput){
		"blank title":   func(in *ports.RecipeInput) { in.Title = "  " },
		"long title":    func(in *ports.RecipeInput) { in.Title = strings.Repeat("a", 256) },
		"negative time": func(in *ports.RecipeInput) { in.TimeMinutes = -1 },
		"long link":     func(in *ports.RecipeInput) { in.Link = strings.Repeat("l", 256) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := sampleInput()
			mutate(&in)
			_, err := svc.Create(context.Background(), "1", in)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
	if repo.created != 0 {
		t.Fatalf("invalid recipes must not be stored")
	}
}

func TestRecipeService_ListIsOwnerScoped(t *testing.T) {
	repo := newStubRecipeRepo()
	svc := NewRecipeService(repo, zerolog.Nop())
	ctx := context.Background()

	_, _ = svc.Create(ctx, "1", sampleInput())
	_, _ = svc.Create(ctx, "1", sampleInput())
	_, _ = svc.Create(ctx, "2", sampleInput())

	list, err := svc.List(ctx, "1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(list))
	}
	for _, r := range list {
		if r.OwnerID != "1" {
			t.Fatalf("recipe of another owner leaked: %+v", r)
		}
	}
}

func TestRecipeService_UpdatePartial(t *testing.T) {
	repo := newStubRecipeRepo()
	svc := NewRecipeService(repo, zerolog.Nop())
	ctx := context.Background()

	rec, _ := svc.Create(ctx, "1", sampleInput())

	title := "New title"
	updated, err := svc.Update(ctx, "1", rec.ID, ports.RecipePatch{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "New title" || updated.Link != rec.Link || updated.Price != rec.Price {
		t.Fatalf("partial update changed other fields: %+v", updated)
	}
	if updated.OwnerID != "1" {
		t.Fatalf("owner must not change")
	}
}

func TestRecipeService_UpdateOtherOwner(t *testing.T) {
	repo := newStubRecipeRepo()
	svc := NewRecipeService(repo, zerolog.Nop())
	ctx := context.Background()

	rec, _ := svc.Create(ctx, "1", sampleInput())

	title := "hijack"
	_, err := svc.Update(ctx, "2", rec.ID, ports.RecipePatch{Title: &title})
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
	if repo.updated != 0 {
		t.Fatalf("repo should not have been updated")
	}
}

func TestRecipeService_UpdateInvalidLeavesRecipe(t *testing.T) {
	repo := newStubRecipeRepo()
	svc := NewRecipeService(repo, zerolog.Nop())
	ctx := context.Background()

	rec, _ := svc.Create(ctx, "1", sampleInput())

	blank := ""
	_, err := svc.Update(ctx, "1", rec.ID, ports.RecipePatch{Title: &blank})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	got, _ := svc.Get(ctx, "1", rec.ID)
	if got.Title != "Sample recipe" {
		t.Fatalf("recipe changed after failed update: %+v", got)
	}
}

func TestRecipeService_Delete(t *testing.T) {
	repo := newStubRecipeRepo()
	svc := NewRecipeService(repo, zerolog.Nop())
	ctx := context.Background()

	rec, _ := svc.Create(ctx, "1", sampleInput())

	if err := svc.Delete(ctx, "2", rec.ID); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound for other owner, got %v", err)
	}
	if err := svc.Delete(ctx, "1", rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "1", rec.ID); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound after delete, got %v", err)
	}
}
