package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/noteful/internal/domain/entity"
	"github.com/oksasatya/noteful/internal/domain/repository"
)

type userStore struct {
	s *Store
}

func (u *userStore) Create(_ context.Context, user *entity.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.st.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	now := u.s.now()
	user.ID = uuid.NewString()
	user.CreatedAt, user.UpdatedAt = now, now
	u.s.st.users[user.ID] = *user
	return nil
}

func (u *userStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.st.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (u *userStore) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range u.s.st.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *userStore) CountByUsername(_ context.Context, username string) (int, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	n := 0
	for _, user := range u.s.st.users {
		if user.Username == username {
			n++
		}
	}
	return n, nil
}
