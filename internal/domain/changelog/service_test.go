package changelog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) Append(ctx context.Context, entry *Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *repoMock) Recent(ctx context.Context, opts ListOptions) ([]Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRecordFillsIDAndTimestamp(t *testing.T) {
	repo := new(repoMock)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)
	svc := NewService(repo, nil)

	entry := &Entry{ChangeType: TypeProjectCreated, ProjectID: "CRQ000123", Summary: "created project CRQ000123"}
	require.NoError(t, svc.Record(context.Background(), entry))

	require.NotEmpty(t, entry.ID)
	require.False(t, entry.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestRecordKeepsProvidedFields(t *testing.T) {
	repo := new(repoMock)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)
	svc := NewService(repo, nil)

	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	entry := &Entry{ID: "fixed", ChangeType: TypeProjectDeleted, CreatedAt: at}
	require.NoError(t, svc.Record(context.Background(), entry))

	require.Equal(t, "fixed", entry.ID)
	require.Equal(t, at, entry.CreatedAt)
}

func TestRecordRejectsInvalidEntry(t *testing.T) {
	svc := NewService(new(repoMock), nil)

	require.ErrorIs(t, svc.Record(context.Background(), nil), ErrInvalidEntry)
	require.ErrorIs(t, svc.Record(context.Background(), &Entry{}), ErrInvalidEntry)
}

func TestRecent(t *testing.T) {
	repo := new(repoMock)
	want := []Entry{{ID: "e1", ChangeType: TypeActivityToggled}}
	repo.On("Recent", mock.Anything, ListOptions{Limit: 5}).Return(want, nil)
	svc := NewService(repo, nil)

	got, err := svc.Recent(context.Background(), ListOptions{Limit: 5})
	require.NoError(t, err)
	require.Equal(t, want, got)
}
