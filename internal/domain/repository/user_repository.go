package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"codetrail/internal/common"
	"codetrail/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByKey resolves the opaque per-user API key carried on requests.
	FindByKey(ctx context.Context, key string) (*model.User, error)
	// SaveProgress persists the user's per-track current/completed maps.
	SaveProgress(ctx context.Context, tx *sql.Tx, user *model.User) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	current, completed, err := marshalProgress(user)
	if err != nil {
		return err
	}
	query := `INSERT INTO users (id, username, email, hashed_password, key, current, completed)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.HashedPassword, user.Key, current, completed)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return common.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return common.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username", username)
}

func (r *pgUserRepository) FindByKey(ctx context.Context, key string) (*model.User, error) {
	return r.findBy(ctx, "key", key)
}

func (r *pgUserRepository) findBy(ctx context.Context, column, value string) (*model.User, error) {
	query := `SELECT id, username, email, hashed_password, key, current, completed, created_at, updated_at
	          FROM users WHERE ` + column + ` = $1`
	user := &model.User{}
	var current, completed []byte
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.Key,
		&current, &completed, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.Errorf("pgUserRepository.findBy %s: %w", column, err)
	}
	if err := unmarshalProgress(user, current, completed); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) SaveProgress(ctx context.Context, tx *sql.Tx, user *model.User) error {
	current, completed, err := marshalProgress(user)
	if err != nil {
		return err
	}
	query := `UPDATE users SET current = $1, completed = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, current, completed, user.ID)
	} else {
		_, err = r.db.ExecContext(ctx, query, current, completed, user.ID)
	}
	if err != nil {
		return common.Errorf("pgUserRepository.SaveProgress: %w", err)
	}
	return nil
}

func marshalProgress(user *model.User) ([]byte, []byte, error) {
	if user.Current == nil {
		user.Current = map[string]string{}
	}
	if user.Completed == nil {
		user.Completed = map[string][]string{}
	}
	current, err := json.Marshal(user.Current)
	if err != nil {
		return nil, nil, common.Errorf("failed to marshal current map: %w", err)
	}
	completed, err := json.Marshal(user.Completed)
	if err != nil {
		return nil, nil, common.Errorf("failed to marshal completed map: %w", err)
	}
	return current, completed, nil
}

func unmarshalProgress(user *model.User, current, completed []byte) error {
	if len(current) > 0 {
		if err := json.Unmarshal(current, &user.Current); err != nil {
			return common.Errorf("failed to unmarshal current map: %w", err)
		}
	}
	if len(completed) > 0 {
		if err := json.Unmarshal(completed, &user.Completed); err != nil {
			return common.Errorf("failed to unmarshal completed map: %w", err)
		}
	}
	if user.Current == nil {
		user.Current = map[string]string{}
	}
	if user.Completed == nil {
		user.Completed = map[string][]string{}
	}
	return nil
}
