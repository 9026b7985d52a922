package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gestionrodar/filmoteca/internal/apperr"
	"github.com/gestionrodar/filmoteca/internal/domain/user"
)

// UsersRepo is a mutex-guarded map with the same contract as the postgres
// repo; uniqueness is enforced atomically under the lock, mirroring the
// database's unique indexes.
type UsersRepo struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{users: make(map[string]user.User)}
}

func (r *UsersRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return user.User{}, apperr.New(apperr.Conflict, "username or email already in use")
		}
	}

	r.users[u.ID] = u

	return u, nil
}

func (r *UsersRepo) GetByUsernameOrEmail(_ context.Context, identifier string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == identifier || u.Email == strings.ToLower(identifier) {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	// hash-free projection, same as the SQL column list
	u.PasswordHash = ""

	return u, nil
}

func (r *UsersRepo) TouchLastLogin(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]

	if !ok {
		return user.ErrNotFound
	}

	now := time.Now().UTC()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	r.users[id] = u

	return nil
}

func (r *UsersRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]

	if !ok {
		return user.ErrNotFound
	}

	u.IsActive = active
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u

	return nil
}

func (r *UsersRepo) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.users))

	for _, u := range r.users {
		u.PasswordHash = ""
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
