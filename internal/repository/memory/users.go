package memory

import (
	"context"

	"eventwave/internal/domain"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.uniqueLocked(0, user.Username, user.Email); err != nil {
		return err
	}
	now := r.s.now()
	user.ID = r.s.id("users")
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u := r.s.userRef(id); u != nil {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if err := r.uniqueLocked(user.ID, user.Username, user.Email); err != nil {
		return err
	}
	stored.Username = user.Username
	stored.Email = user.Email
	stored.UpdatedAt = r.s.now()
	r.s.users[user.ID] = stored
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

// uniqueLocked mirrors the unique indexes on username and email
func (r *userRepo) uniqueLocked(self uint, username, email string) error {
	for id, u := range r.s.users {
		if id == self {
			continue
		}
		if u.Username == username || u.Email == email {
			return domain.NewConflictError("username or email already exists")
		}
	}
	return nil
}
