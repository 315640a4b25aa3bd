package sqlite

import (
	"context"
	"fmt"

	"github.com/emarinelli/crqtrack/internal/domain/changelog"
)

// ChangeLogRepository implements changelog.Repository for SQLite
type ChangeLogRepository struct {
	db *DB
}

// NewChangeLogRepository creates a new ChangeLogRepository
func NewChangeLogRepository(db *DB) *ChangeLogRepository {
	return &ChangeLogRepository{db: db}
}

// Append inserts a new change-log entry
func (r *ChangeLogRepository) Append(ctx context.Context, entry *changelog.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO change_log (id, project_id, change_type, summary, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID,
		entry.ProjectID,
		string(entry.ChangeType),
		entry.Summary,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append change-log entry: %w", err)
	}
	return nil
}

// Recent returns change-log entries matching the given filters, newest first
func (r *ChangeLogRepository) Recent(ctx context.Context, opts changelog.ListOptions) ([]changelog.Entry, error) {
	query := `
		SELECT id, project_id, change_type, summary, created_at
		FROM change_log
	`

	args := []interface{}{}
	conditions := []string{}

	if opts.ProjectID != "" {
		conditions = append(conditions, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.Type != nil {
		conditions = append(conditions, "change_type = ?")
		args = append(args, string(*opts.Type))
	}

	if len(conditions) > 0 {
		query += " WHERE " + conditions[0]
		for _, c := range conditions[1:] {
			query += " AND " + c
		}
	}

	query += " ORDER BY created_at DESC, id DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query change log: %w", err)
	}
	defer rows.Close()

	var entries []changelog.Entry
	for rows.Next() {
		var e changelog.Entry
		var changeType string
		if err := rows.Scan(&e.ID, &e.ProjectID, &changeType, &e.Summary, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan change-log entry: %w", err)
		}
		e.ChangeType = changelog.ChangeType(changeType)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate change log: %w", err)
	}

	return entries, nil
}
