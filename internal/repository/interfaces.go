package repository

import (
	"context"

	"github.com/emarinelli/crqtrack/internal/domain/changelog"
)

// ProjectStore persists the whole project collection as one JSON document
// under a single well-known key. There are no partial updates: readers get
// the full serialized collection and writers replace it atomically.
type ProjectStore interface {
	// Load returns the stored collection JSON, or ErrNotFound when nothing
	// has been saved yet.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored collection JSON.
	Save(ctx context.Context, data []byte) error
}

// ChangeLog persists the audit trail of engine operations.
type ChangeLog interface {
	Append(ctx context.Context, entry *changelog.Entry) error
	Recent(ctx context.Context, opts changelog.ListOptions) ([]changelog.Entry, error)
}
