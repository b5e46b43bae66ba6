package memory

import (
	"context"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userStore struct{ s *Store }

func (u userStore) Create(ctx context.Context, user *model.User) error {
	if err := u.s.lock(ctx); err != nil {
		return err
	}
	defer u.s.unlock()

	for _, existing := range u.s.data.users {
		if existing.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = u.s.now()
	user.UpdatedAt = user.CreatedAt
	u.s.data.users[user.ID] = *user
	return nil
}

func (u userStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if err := u.s.lock(ctx); err != nil {
		return nil, err
	}
	defer u.s.unlock()

	user, ok := u.s.data.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (u userStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := u.s.lock(ctx); err != nil {
		return nil, err
	}
	defer u.s.unlock()

	for _, user := range u.s.data.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (u userStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	if err := u.s.lock(ctx); err != nil {
		return nil, err
	}
	defer u.s.unlock()

	users := make([]model.User, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if user, ok := u.s.data.users[id]; ok && !seen[id] {
			seen[id] = true
			users = append(users, user)
		}
	}
	return users, nil
}

func (u userStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := u.GetByUsername(ctx, username)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}
