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

// MonthRepository stores each user's month-sheet collection as one JSON array.
type MonthRepository struct {
	store  KeyValueStore
	logger *zap.Logger
}

// NewMonthRepository constructs the repository.
func NewMonthRepository(store KeyValueStore, logger *zap.Logger) *MonthRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MonthRepository{store: store, logger: logger}
}

func hoursKey(userID string) string {
	return "hours_data:" + userID
}

// List returns the user's collection. A missing or unreadable blob yields an empty one.
func (r *MonthRepository) List(ctx context.Context, userID string) ([]models.MonthRecord, error) {
	raw, err := r.store.Get(ctx, hoursKey(userID))
	if err != nil {
		if errors.Is(err, appErrors.ErrKeyNotFound) {
			return []models.MonthRecord{}, nil
		}
		return nil, fmt.Errorf("load month records: %w", err)
	}

	var months []models.MonthRecord
	if err := json.Unmarshal(raw, &months); err != nil {
		r.logger.Warn("discarding malformed month records", zap.String("user_id", userID), zap.Error(err))
		return []models.MonthRecord{}, nil
	}
	if months == nil {
		months = []models.MonthRecord{}
	}
	return months, nil
}

// Save overwrites the user's collection.
func (r *MonthRepository) Save(ctx context.Context, userID string, months []models.MonthRecord) error {
	if months == nil {
		months = []models.MonthRecord{}
	}
	payload, err := json.Marshal(months)
	if err != nil {
		return fmt.Errorf("marshal month records: %w", err)
	}
	if err := r.store.Set(ctx, hoursKey(userID), payload); err != nil {
		return fmt.Errorf("save month records: %w", err)
	}
	return nil
}
