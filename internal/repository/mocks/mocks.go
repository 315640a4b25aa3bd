package mocks

import (
	"context"

	"github.com/emarinelli/crqtrack/internal/domain/changelog"
	"github.com/stretchr/testify/mock"
)

// ProjectStore is a mock for repository.ProjectStore.
type ProjectStore struct {
	mock.Mock
}

func (m *ProjectStore) Load(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectStore) Save(ctx context.Context, data []byte) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// ChangeLog is a mock for repository.ChangeLog.
type ChangeLog struct {
	mock.Mock
}

func (m *ChangeLog) Append(ctx context.Context, entry *changelog.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ChangeLog) Recent(ctx context.Context, opts changelog.ListOptions) ([]changelog.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]changelog.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
