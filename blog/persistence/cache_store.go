package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/edublog/edublog/blog/domain"
	"github.com/edublog/edublog/shared/db"
)

var _ domain.LocalCache = (*SQLiteCacheStore)(nil)

// SQLiteCacheStore implements domain.LocalCache on a single kv table.
// Values are whole-collection JSON blobs written in one statement inside a
// transaction, so a key is never left partially updated.
type SQLiteCacheStore struct {
	db *sql.DB
}

// NewCacheStore creates a cache store from a standard sql.DB.
func NewCacheStore(db *sql.DB) *SQLiteCacheStore {
	return &SQLiteCacheStore{
		db: db,
	}
}

const getValueQuery = `
	SELECT value FROM kv WHERE key = ?
`

// Get returns the stored value for key and whether the key was present.
func (s *SQLiteCacheStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("cache key cannot be empty")
	}

	executor := db.GetExecutor(ctx, s.db)

	var value string
	err := executor.QueryRowContext(ctx, getValueQuery, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache key %q: %w", key, err)
	}

	return value, true, nil
}

const setValueQuery = `
	INSERT INTO kv (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at
`

// Set writes the value for key, replacing any previous blob whole.
func (s *SQLiteCacheStore) Set(ctx context.Context, key string, value string) error {
	if key == "" {
		return fmt.Errorf("cache key cannot be empty")
	}

	return db.RunInTransaction(ctx, s.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, s.db)
		_, err := executor.ExecContext(txCtx, setValueQuery, key, value, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to write cache key %q: %w", key, err)
		}
		return nil
	})
}

const deleteValueQuery = `
	DELETE FROM kv WHERE key = ?
`

// Delete removes key. Deleting an absent key is not an error.
func (s *SQLiteCacheStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("cache key cannot be empty")
	}

	return db.RunInTransaction(ctx, s.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, s.db)
		_, err := executor.ExecContext(txCtx, deleteValueQuery, key)
		if err != nil {
			return fmt.Errorf("failed to delete cache key %q: %w", key, err)
		}
		return nil
	})
}
