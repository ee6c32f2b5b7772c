package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/recipe-app/recipe-api/internal/core/domain"
)

type stubUserRepo struct {
	mu     sync.Mutex
	next   int
	users  map[string]*domain.User
	delErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.next++
	copy := cloneUser(user)
	copy.ID = strconv.Itoa(r.next)
	r.users[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for i := 1; i <= r.next; i++ {
		if u, ok := r.users[strconv.Itoa(i)]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.delErr != nil {
		return r.delErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubTokenStore keeps tokens in a map. getFn and setFn override the
// default behaviour when set.
type stubTokenStore struct {
	mu      sync.Mutex
	tokens  map[string]string
	deleted []string

	getFn func(ctx context.Context, userID string) (string, error)
	setFn func(ctx context.Context, userID, token string) (bool, error)
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]string)}
}

func (s *stubTokenStore) Get(ctx context.Context, userID string) (string, error) {
	if s.getFn != nil {
		return s.getFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[userID]
	if !ok {
		return "", domain.ErrTokenNotFound
	}
	return tok, nil
}

func (s *stubTokenStore) SetIfAbsent(ctx context.Context, userID, token string) (bool, error) {
	if s.setFn != nil {
		return s.setFn(ctx, userID, token)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[userID]; ok {
		return false, nil
	}
	s.tokens[userID] = token
	return true, nil
}

func (s *stubTokenStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, userID)
	delete(s.tokens, userID)
	return nil
}

type stubRecipeRepo struct {
	next    int
	recipes map[string]*domain.Recipe
	created int
	updated int
}

func newStubRecipeRepo() *stubRecipeRepo {
	return &stubRecipeRepo{recipes: make(map[string]*domain.Recipe)}
}

func (r *stubRecipeRepo) Create(_ context.Context, rec *domain.Recipe) (*domain.Recipe, error) {
	r.next++
	r.created++
	c := *rec
	c.ID = strconv.Itoa(r.next)
	r.recipes[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubRecipeRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Recipe, error) {
	out := []*domain.Recipe{}
	for _, rec := range r.recipes {
		if rec.OwnerID == ownerID {
			c := *rec
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubRecipeRepo) FindByID(_ context.Context, ownerID, id string) (*domain.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, domain.ErrRecipeNotFound
	}
	c := *rec
	return &c, nil
}

func (r *stubRecipeRepo) Update(_ context.Context, rec *domain.Recipe) (*domain.Recipe, error) {
	cur, ok := r.recipes[rec.ID]
	if !ok || cur.OwnerID != rec.OwnerID {
		return nil, domain.ErrRecipeNotFound
	}
	r.updated++
	c := *rec
	r.recipes[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubRecipeRepo) Delete(_ context.Context, ownerID, id string) error {
	rec, ok := r.recipes[id]
	if !ok || rec.OwnerID != ownerID {
		return domain.ErrRecipeNotFound
	}
	delete(r.recipes, id)
	return nil
}
