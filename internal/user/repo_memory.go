package user

import (
	"context"
	"sync"
	"time"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/models"
)

// MemoryRepo is an in-memory Repository.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]models.User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[uint]models.User)}
}

func (r *MemoryRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return apperr.Conflict("username or email already exists")
		}
	}
	r.nextID++
	now := time.Now()
	u.ID = r.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &u, nil
}

func (r *MemoryRepo) FindByLogin(_ context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == login || u.Email == login {
			return &u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *MemoryRepo) UpdateProfile(_ context.Context, id uint, p Profile) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return &u, nil
}

func (r *MemoryRepo) SetRole(_ context.Context, id uint, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}
