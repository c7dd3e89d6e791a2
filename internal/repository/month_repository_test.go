package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
)

type failingStore struct {
	KeyValueStore
	setErr error
	getErr error
}

func (s *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.KeyValueStore.Get(ctx, key)
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.KeyValueStore.Set(ctx, key, value)
}

func TestMonthRepositoryEmptyWhenMissing(t *testing.T) {
	repo := NewMonthRepository(NewMemoryStore(), nil)
	months, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, months)
	assert.Empty(t, months)
}

func TestMonthRepositoryRoundTripPerUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewMonthRepository(store, nil)

	record := models.MonthRecord{
		ID:             "2024-1-1",
		Label:          "Fevereiro 2024",
		Year:           2024,
		MonthIndex:     1,
		CommercialDays: []models.WorkDay{{Date: "2024-02-01", DayNumber: 1, Weekday: "Qui", EntryTime: "08:00", ExitTime: "17:00"}},
		NightDays:      []models.WorkDay{{Date: "2024-02-01", DayNumber: 1, Weekday: "Qui"}},
	}
	require.NoError(t, repo.Save(ctx, "u1", []models.MonthRecord{record}))

	months, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, months, 1)
	assert.Equal(t, record, months[0])

	other, err := repo.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	raw, err := store.Get(ctx, "hours_data:u1")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"label":"Fevereiro 2024"`)
}

func TestMonthRepositoryMalformedBlobIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "hours_data:u1", []byte("{not json")))

	months, err := NewMonthRepository(store, nil).List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, months)
}

func TestMonthRepositorySurfacesStoreErrors(t *testing.T) {
	boom := errors.New("unavailable")
	repo := NewMonthRepository(&failingStore{KeyValueStore: NewMemoryStore(), setErr: boom, getErr: boom}, nil)

	_, err := repo.List(context.Background(), "u1")
	assert.ErrorIs(t, err, boom)

	err = repo.Save(context.Background(), "u1", nil)
	assert.ErrorIs(t, err, boom)
}
