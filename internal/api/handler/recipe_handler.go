package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipe-app/recipe-api/internal/api/metrics"
	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

// RecipeHandler serves the recipes of the authenticated user. Recipes of
// other users are reported as not found.
type RecipeHandler struct {
	recipes ports.RecipeService
}

func NewRecipeHandler(recipes ports.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// List returns the caller's recipes, newest first.
//
// @Summary      List own recipes
// @Tags         recipes
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   recipeListItem
// @Failure      401  {object}  errorResponse
// @Router       /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	recipes, err := h.recipes.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	out := make([]recipeListItem, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, toRecipeListItem(r))
	}
	return c.JSON(http.StatusOK, out)
}

// Create stores a recipe owned by the caller.
//
// @Summary      Create a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      recipeRequest  true  "Recipe"
// @Success      201   {object}  recipeDetail
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req recipeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	price, err := parsePrice(*req.Price)
	if err != nil {
		return err
	}

	created, err := h.recipes.Create(c.Request().Context(), user.ID, ports.RecipeInput{
		Title:       *req.Title,
		Description: deref(req.Description),
		TimeMinutes: *req.TimeMinutes,
		Price:       price,
		Link:        deref(req.Link),
	})
	if err != nil {
		return err
	}

	metrics.RecipeOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toRecipeDetail(created))
}

// Get returns one of the caller's recipes.
//
// @Summary      Get a recipe
// @Tags         recipes
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Recipe ID"
// @Success      200  {object}  recipeDetail
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	recipe, err := h.recipes.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecipeDetail(recipe))
}

// Replace overwrites every field of one of the caller's recipes.
//
// @Summary      Replace a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string         true  "Recipe ID"
// @Param        body  body      recipeRequest  true  "Recipe"
// @Success      200   {object}  recipeDetail
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /recipes/{id} [put]
func (h *RecipeHandler) Replace(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req recipeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	price, err := parsePrice(*req.Price)
	if err != nil {
		return err
	}

	description := deref(req.Description)
	link := deref(req.Link)
	return h.update(c, user.ID, ports.RecipePatch{
		Title:       req.Title,
		Description: &description,
		TimeMinutes: req.TimeMinutes,
		Price:       &price,
		Link:        &link,
	})
}

// Patch changes the given fields of one of the caller's recipes.
//
// @Summary      Partially update a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string              true  "Recipe ID"
// @Param        body  body      recipePatchRequest  true  "Fields to change"
// @Success      200   {object}  recipeDetail
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /recipes/{id} [patch]
func (h *RecipeHandler) Patch(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req recipePatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := ports.RecipePatch{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Link:        req.Link,
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return err
		}
		patch.Price = &price
	}
	return h.update(c, user.ID, patch)
}

func (h *RecipeHandler) update(c echo.Context, ownerID string, patch ports.RecipePatch) error {
	updated, err := h.recipes.Update(c.Request().Context(), ownerID, c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.RecipeOperationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toRecipeDetail(updated))
}

// Delete removes one of the caller's recipes.
//
// @Summary      Delete a recipe
// @Tags         recipes
// @Security     TokenAuth
// @Param        id   path  string  true  "Recipe ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.recipes.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}

	metrics.RecipeOperationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func parsePrice(n json.Number) (domain.Price, error) {
	p, err := domain.ParsePrice(n.String())
	if err != nil {
		return 0, domain.NewValidationError("price", err.Error())
	}
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
