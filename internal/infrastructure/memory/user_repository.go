package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/moodwatch/internal/domain/entity"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
)

// UserRepository keeps users in memory. Usernames are unique case-insensitively.
type UserRepository struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]entity.User
	byUsername map[string]int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[int64]entity.User),
		byUsername: make(map[string]int64),
	}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	key := strings.ToLower(u.Username)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[key]; ok {
		return repository.ErrUsernameTaken
	}
	r.nextID++
	u.ID = r.nextID
	if u.Role == "" {
		u.Role = entity.DefaultRole
	}
	u.CreatedAt = time.Now().UTC()
	r.byID[u.ID] = *u
	r.byUsername[key] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[strings.ToLower(username)]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id int64, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Role = role
	r.byID[id] = u
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
