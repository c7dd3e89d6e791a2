package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
)

const usersKey = "users"

// UserRepository stores the users collection and one session snapshot per user.
type UserRepository struct {
	store  KeyValueStore
	logger *zap.Logger
}

// NewUserRepository constructs the repository.
func NewUserRepository(store KeyValueStore, logger *zap.Logger) *UserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserRepository{store: store, logger: logger}
}

func sessionKey(userID string) string {
	return "session:" + userID
}

// List returns every registered user. A missing or unreadable blob yields an empty list.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	raw, err := r.store.Get(ctx, usersKey)
	if err != nil {
		if errors.Is(err, appErrors.ErrKeyNotFound) {
			return []models.User{}, nil
		}
		return nil, fmt.Errorf("load users: %w", err)
	}
	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		r.logger.Warn("discarding malformed users collection", zap.Error(err))
		return []models.User{}, nil
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// SaveAll overwrites the users collection.
func (r *UserRepository) SaveAll(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	payload, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := r.store.Set(ctx, usersKey, payload); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// GetSession returns the active session snapshot or appErrors.ErrNotFound.
func (r *UserRepository) GetSession(ctx context.Context, userID string) (*models.User, error) {
	raw, err := r.store.Get(ctx, sessionKey(userID))
	if err != nil {
		if errors.Is(err, appErrors.ErrKeyNotFound) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		r.logger.Warn("discarding malformed session", zap.String("user_id", userID), zap.Error(err))
		return nil, appErrors.ErrNotFound
	}
	return &user, nil
}

// SetSession stores user as the active session snapshot.
func (r *UserRepository) SetSession(ctx context.Context, user models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.store.Set(ctx, sessionKey(user.ID), payload); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// DeleteSession removes the session snapshot; absent sessions are ignored.
func (r *UserRepository) DeleteSession(ctx context.Context, userID string) error {
	if err := r.store.Delete(ctx, sessionKey(userID)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
