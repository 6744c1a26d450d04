package memory

import (
	"context"
	"sync"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

// UserRepo possède les enregistrements User. Même discipline que FilmRepo :
// copie à chaque frontière, compteur d'IDs propre à l'instance.
type UserRepo struct {
	mu     sync.RWMutex
	lastID int64
	users  map[int64]*domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[int64]*domain.User)}
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u.Clone())
	}
	return users, nil
}

func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.NotFoundf("user with id %d not found", id)
	}
	return u.Clone(), nil
}

func (r *UserRepo) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	stored := user.Clone()
	stored.ID = r.lastID
	r.users[stored.ID] = stored

	return stored.Clone(), nil
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.NotFoundf("user with id %d not found", user.ID)
	}
	stored := user.Clone()
	r.users[stored.ID] = stored

	return stored.Clone(), nil
}

func (r *UserRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID = 0
	r.users = make(map[int64]*domain.User)
	return nil
}
