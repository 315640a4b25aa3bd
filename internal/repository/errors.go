package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity or key doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable is returned when the backing store cannot be
	// read or written; callers degrade to in-memory state
	ErrStorageUnavailable = errors.New("storage unavailable")
)
