package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
)

type kvEntry struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PostgresStore persists blobs in a single kv_entries table.
type PostgresStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresStore constructs the store.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// EnsureSchema creates the backing table when missing.
func (r *PostgresStore) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS kv_entries (
    key TEXT PRIMARY KEY,
    value BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create kv_entries: %w", err)
	}
	return nil
}

// Get implements KeyValueStore.
func (r *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT key, value, updated_at FROM kv_entries WHERE key = $1`
	var entry kvEntry
	if err := r.db.GetContext(ctx, &entry, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get kv entry %s: %w", key, err)
	}
	return entry.Value, nil
}

// Set implements KeyValueStore.
func (r *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	const query = `INSERT INTO kv_entries (key, value, updated_at)
VALUES (:key, :value, :updated_at)
ON CONFLICT (key)
DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	entry := kvEntry{Key: key, Value: value, UpdatedAt: r.now()}
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("upsert kv entry %s: %w", key, err)
	}
	return nil
}

// Delete implements KeyValueStore.
func (r *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete kv entry %s: %w", key, err)
	}
	return nil
}
