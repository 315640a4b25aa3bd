package changelog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidEntry indicates a nil or incomplete change-log entry.
var ErrInvalidEntry = errors.New("invalid change-log entry")

// Repository persists change-log entries.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, opts ListOptions) ([]Entry, error)
}

// Service handles change-log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new change-log service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record appends an entry, filling in ID and timestamp when missing.
func (s *Service) Record(ctx context.Context, entry *Entry) error {
	if entry == nil || entry.ChangeType == "" {
		return ErrInvalidEntry
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("appending change-log entry: %w", err)
	}
	return nil
}

// Recent lists change-log entries, newest first.
func (s *Service) Recent(ctx context.Context, opts ListOptions) ([]Entry, error) {
	return s.repo.Recent(ctx, opts)
}
