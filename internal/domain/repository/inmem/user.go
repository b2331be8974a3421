package inmem

import (
	"context"
	"database/sql"

	"codetrail/internal/common"
	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(_ context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == user.Username || (user.Email != "" && u.Email == user.Email) {
			return common.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
	}
	if user.Current == nil {
		user.Current = map[string]string{}
	}
	if user.Completed == nil {
		user.Completed = map[string][]string{}
	}
	r.db.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if u, ok := r.db.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, common.ErrNotFound
}

func (r *userRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *userRepository) FindByKey(_ context.Context, key string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if key == "" {
		return nil, common.ErrNotFound
	}
	for _, u := range r.db.users {
		if u.Key == key {
			return copyUser(u), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *userRepository) SaveProgress(_ context.Context, _ *sql.Tx, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.users[user.ID]
	if !ok {
		return common.ErrNotFound
	}
	cp := copyUser(user)
	cp.Username = stored.Username
	cp.Email = stored.Email
	cp.HashedPassword = stored.HashedPassword
	cp.Key = stored.Key
	r.db.users[user.ID] = cp
	return nil
}
