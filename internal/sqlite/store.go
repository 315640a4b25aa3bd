package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emarinelli/crqtrack/internal/repository"
)

const projectsKey = "projects"

// ProjectStore implements repository.ProjectStore for SQLite. The whole
// collection lives under a single key so reads and writes stay atomic.
type ProjectStore struct {
	db *DB
}

// NewProjectStore creates a new ProjectStore
func NewProjectStore(db *DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// Load reads the stored collection document.
func (s *ProjectStore) Load(ctx context.Context) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE key = ?`, projectsKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading collection: %v", repository.ErrStorageUnavailable, err)
	}
	return []byte(value), nil
}

// Save replaces the stored collection document.
func (s *ProjectStore) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		projectsKey, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("%w: saving collection: %v", repository.ErrStorageUnavailable, err)
	}
	return nil
}
