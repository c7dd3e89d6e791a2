package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
)

func newPostgresStoreMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewPostgresStore(sqlxDB), mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestPostgresStoreEnsureSchema(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_entries").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGet(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"key", "value", "updated_at"}).
		AddRow("vetflow:users", []byte(`[]`), time.Now())
	mock.ExpectQuery("SELECT key, value, updated_at FROM kv_entries").
		WithArgs("vetflow:users").
		WillReturnRows(rows)

	raw, err := store.Get(context.Background(), "vetflow:users")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetMissing(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT key, value, updated_at FROM kv_entries").
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

	_, err := store.Get(context.Background(), "absent")
	assert.True(t, errors.Is(err, appErrors.ErrKeyNotFound))
}

func TestPostgresStoreSetUpserts(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("vetflow:session:u1", []byte(`{"id":"u1"}`), fixed).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Set(context.Background(), "vetflow:session:u1", []byte(`{"id":"u1"}`)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSetFailureIsWrapped(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	boom := errors.New("disk full")
	mock.ExpectExec("INSERT INTO kv_entries").WillReturnError(boom)

	err := store.Set(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestPostgresStoreDelete(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM kv_entries").
		WithArgs("vetflow:session:u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), "vetflow:session:u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
