// Package memory provides map-backed implementations of the storage ports.
// They keep the same guarantees as the database drivers (unique email,
// owner-scoped recipe lookups, cascade delete) and are used for local runs
// and tests.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/recipe-app/recipe-api/internal/core/domain"
	"github.com/recipe-app/recipe-api/internal/core/ports"
)

// Store holds users and recipes under a single lock so that user deletion
// and its recipe cascade are atomic.
type Store struct {
	mu         sync.RWMutex
	nextUser   int64
	nextRecipe int64
	users      map[string]*domain.User
	byEmail    map[string]string
	recipes    map[string]*domain.Recipe
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
		recipes: make(map[string]*domain.Recipe),
	}
}

// Users returns the credential store view.
func (s *Store) Users() ports.UserRepository { return (*userRepository)(s) }

// Recipes returns the recipe store view.
func (s *Store) Recipes() ports.RecipeRepository { return (*recipeRepository)(s) }

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close(context.Context) error { return nil }

type userRepository Store

var _ ports.UserRepository = (*userRepository)(nil)

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *userRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user.Email == "" {
		return nil, domain.ErrMissingEmail
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrDuplicateEmail
	}

	r.nextUser++
	stored := cloneUser(user)
	stored.ID = strconv.FormatInt(r.nextUser, 10)
	r.users[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	return cloneUser(stored), nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.users[id]), nil
}

func (r *userRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return numericLess(out[i].ID, out[j].ID) })
	return out, nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if user.Email == "" {
		return nil, domain.ErrMissingEmail
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if owner, taken := r.byEmail[user.Email]; taken && owner != user.ID {
		return nil, domain.ErrDuplicateEmail
	}

	delete(r.byEmail, current.Email)
	stored := cloneUser(user)
	stored.CreatedAt = current.CreatedAt
	r.users[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	return cloneUser(stored), nil
}

func (r *userRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	for rid, rec := range r.recipes {
		if rec.OwnerID == id {
			delete(r.recipes, rid)
		}
	}
	delete(r.byEmail, u.Email)
	delete(r.users, id)
	return nil
}

type recipeRepository Store

var _ ports.RecipeRepository = (*recipeRepository)(nil)

func cloneRecipe(rec *domain.Recipe) *domain.Recipe {
	c := *rec
	return &c
}

func (r *recipeRepository) Create(_ context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[recipe.OwnerID]; !ok {
		return nil, domain.ErrUserNotFound
	}

	r.nextRecipe++
	stored := cloneRecipe(recipe)
	stored.ID = strconv.FormatInt(r.nextRecipe, 10)
	r.recipes[stored.ID] = stored
	return cloneRecipe(stored), nil
}

func (r *recipeRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Recipe, 0)
	for _, rec := range r.recipes {
		if rec.OwnerID == ownerID {
			out = append(out, cloneRecipe(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return numericLess(out[j].ID, out[i].ID)
	})
	return out, nil
}

func (r *recipeRepository) FindByID(_ context.Context, ownerID, id string) (*domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.recipes[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, domain.ErrRecipeNotFound
	}
	return cloneRecipe(rec), nil
}

func (r *recipeRepository) Update(_ context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.recipes[recipe.ID]
	if !ok || current.OwnerID != recipe.OwnerID {
		return nil, domain.ErrRecipeNotFound
	}
	stored := cloneRecipe(recipe)
	stored.CreatedAt = current.CreatedAt
	r.recipes[stored.ID] = stored
	return cloneRecipe(stored), nil
}

func (r *recipeRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recipes[id]
	if !ok || rec.OwnerID != ownerID {
		return domain.ErrRecipeNotFound
	}
	delete(r.recipes, id)
	return nil
}

// numericLess orders decimal ids numerically ("2" < "10").
func numericLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
