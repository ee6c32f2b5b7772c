package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

var owner = &domain.User{ID: "1", Email: "owner@example.com", IsActive: true}

func sampleRecipe(id string) *domain.Recipe {
	return &domain.Recipe{
		ID:          id,
		OwnerID:     owner.ID,
		Title:       "Sample recipe",
		Description: "Sample description",
		TimeMinutes: 22,
		Price:       domain.MustParsePrice("5.25"),
		Link:        "http://example.com/recipe.pdf",
		CreatedAt:   time.Now(),
	}
}

func TestRecipeHandler_List_OmitsDescription(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		listFn: func(ctx context.Context, ownerID string) ([]*domain.Recipe, error) {
			if ownerID != owner.ID {
				t.Fatalf("unexpected owner: %s", ownerID)
			}
			return []*domain.Recipe{sampleRecipe("2"), sampleRecipe("1")}, nil
		},
	}
	h := NewRecipeHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/recipes", "", owner)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["id"] != "2" {
		t.Fatalf("unexpected list: %+v", resp)
	}
	if _, ok := resp[0]["description"]; ok {
		t.Fatalf("list items must not carry description: %+v", resp[0])
	}
	if resp[0]["price"] != "5.25" {
		t.Fatalf("expected price as string 5.25, got %v", resp[0]["price"])
	}
}

func TestRecipeHandler_List_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		listFn: func(context.Context, string) ([]*domain.Recipe, error) { return nil, nil },
	}
	h := NewRecipeHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/recipes", "", owner)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestRecipeHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		createFn: func(ctx context.Context, ownerID string, input ports.RecipeInput) (*domain.Recipe, error) {
			if ownerID != owner.ID {
				t.Fatalf("owner must come from the token, got %s", ownerID)
			}
			if input.Title != "Chocolate cake" || input.TimeMinutes != 30 || input.Price.String() != "5.99" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Recipe{ID: "9", OwnerID: ownerID, Title: input.Title, TimeMinutes: input.TimeMinutes, Price: input.Price}, nil
		},
	}
	h := NewRecipeHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/recipes",
		`{"title":"Chocolate cake","time_minutes":30,"price":5.99,"user":"2"}`, owner)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "9" || resp["price"] != "5.99" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["description"]; !ok {
		t.Fatalf("detail must carry description: %+v", resp)
	}
}

func TestRecipeHandler_Create_PriceAsString(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		createFn: func(ctx context.Context, ownerID string, input ports.RecipeInput) (*domain.Recipe, error) {
			if input.Price != domain.MustParsePrice("12.50") {
				t.Fatalf("unexpected price: %s", input.Price)
			}
			return &domain.Recipe{ID: "1", OwnerID: ownerID, Price: input.Price}, nil
		},
	}
	h := NewRecipeHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/recipes", `{"title":"Soup","time_minutes":5,"price":"12.5"}`, owner)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestRecipeHandler_Create_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing title", `{"time_minutes":5,"price":"1.00"}`, "title"},
		{"missing time", `{"title":"Soup","price":"1.00"}`, "time_minutes"},
		{"missing price", `{"title":"Soup","time_minutes":5}`, "price"},
		{"too many decimals", `{"title":"Soup","time_minutes":5,"price":1.234}`, "price"},
		{"too many digits", `{"title":"Soup","time_minutes":5,"price":"1000"}`, "price"},
		{"negative time", `{"title":"Soup","time_minutes":-1,"price":"1.00"}`, "time_minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubRecipeService{
				createFn: func(context.Context, string, ports.RecipeInput) (*domain.Recipe, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			h := NewRecipeHandler(stub)

			c, _ := newJSONContext(e, http.MethodPost, "/recipes", tt.body, owner)
			err := h.Create(c)

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Fatalf("expected %s field error, got %+v", tt.field, verr.Fields)
			}
		})
	}
}

func TestRecipeHandler_Get_OtherOwner(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		getFn: func(ctx context.Context, ownerID, id string) (*domain.Recipe, error) {
			if ownerID != owner.ID || id != "42" {
				t.Fatalf("unexpected args: %s %s", ownerID, id)
			}
			return nil, domain.ErrRecipeNotFound
		},
	}
	h := NewRecipeHandler(stub)

	c, _ := newJSONContext(e, http.MethodGet, "/recipes/42", "", owner)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.Get(c); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestRecipeHandler_Patch_OnlyGivenFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		updateFn: func(ctx context.Context, ownerID, id string, patch ports.RecipePatch) (*domain.Recipe, error) {
			if patch.Title == nil || *patch.Title != "New title" {
				t.Fatalf("expected title change: %+v", patch)
			}
			if patch.Description != nil || patch.TimeMinutes != nil || patch.Price != nil || patch.Link != nil {
				t.Fatalf("absent fields must stay nil: %+v", patch)
			}
			r := sampleRecipe(id)
			r.Title = *patch.Title
			return r, nil
		},
	}
	h := NewRecipeHandler(stub)

	c, rec := newJSONContext(e, http.MethodPatch, "/recipes/3", `{"title":"New title"}`, owner)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Patch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRecipeHandler_Replace_ClearsOptionalFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		updateFn: func(ctx context.Context, ownerID, id string, patch ports.RecipePatch) (*domain.Recipe, error) {
			if patch.Description == nil || *patch.Description != "" {
				t.Fatalf("PUT must reset description: %+v", patch.Description)
			}
			if patch.Link == nil || *patch.Link != "" {
				t.Fatalf("PUT must reset link: %+v", patch.Link)
			}
			if patch.Price == nil || patch.Price.String() != "3.00" {
				t.Fatalf("unexpected price: %+v", patch.Price)
			}
			return sampleRecipe(id), nil
		},
	}
	h := NewRecipeHandler(stub)

	c, rec := newJSONContext(e, http.MethodPut, "/recipes/3", `{"title":"Pasta","time_minutes":10,"price":3}`, owner)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Replace(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRecipeHandler_Delete(t *testing.T) {
	e := newTestEcho()
	var deleted string
	stub := &stubRecipeService{
		deleteFn: func(ctx context.Context, ownerID, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewRecipeHandler(stub)

	c, rec := newJSONContext(e, http.MethodDelete, "/recipes/5", "", owner)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "5" {
		t.Fatalf("expected recipe 5 deleted, got %q", deleted)
	}
}
