package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/emarinelli/crqtrack/internal/domain/changelog"
	"github.com/emarinelli/crqtrack/internal/repository"
)

// ChangeRecorder captures change-log entries emitted by engine operations.
type ChangeRecorder interface {
	Record(ctx context.Context, entry *changelog.Entry) error
}

// Service owns the project collection. Every mutation runs a pure engine
// operation and republishes the whole collection under a single lock, then
// writes it through to the store best-effort: a failed save is logged and
// the session continues on the in-memory state.
type Service struct {
	store   repository.ProjectStore
	changes ChangeRecorder
	logger  *slog.Logger
	clock   func() time.Time

	mu       sync.Mutex
	projects []Project
}

// NewService creates a new project service.
func NewService(store repository.ProjectStore, changes ChangeRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:   store,
		changes: changes,
		logger:  logger,
		clock:   time.Now,
	}
}

// Load reads the persisted collection and normalizes every record.
// Invalid entries are dropped with a warning. A missing key starts an
// empty collection; a read failure or corrupt payload leaves the service
// running in memory only. Load never fails the caller.
func (s *Service) Load(ctx context.Context) {
	data, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("project store unavailable, continuing in memory", "error", err)
		}
		return
	}

	var raws []Raw
	if err := json.Unmarshal(data, &raws); err != nil {
		s.logger.Warn("stored collection is corrupt, starting empty", "error", err)
		return
	}

	now := s.clock()
	loaded := make([]Project, 0, len(raws))
	for _, raw := range raws {
		p, err := Normalize(raw, now)
		if err != nil {
			s.logger.Warn("dropping invalid stored project", "id", raw.ID, "error", err)
			continue
		}
		loaded = append(loaded, p)
	}

	s.mu.Lock()
	s.projects = loaded
	s.mu.Unlock()
}

// Create adds a new project at the front of the collection.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.projects))
	for _, p := range s.projects {
		ids = append(ids, p.ID)
	}

	proj, err := New(req, ids, s.clock())
	if err != nil {
		return nil, err
	}

	next := make([]Project, 0, len(s.projects)+1)
	next = append(next, proj)
	next = append(next, s.projects...)
	s.publish(ctx, next)

	s.record(ctx, proj.ID, changelog.TypeProjectCreated, fmt.Sprintf("created project %s", proj.ID))
	return &proj, nil
}

// Get returns the project with the exact ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}
	p := s.projects[idx]
	return &p, nil
}

// List returns the collection in stored order, most recent first.
func (s *Service) List(ctx context.Context) []Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Stats counts projects per status.
func (s *Service) Stats(ctx context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	for _, p := range s.projects {
		switch p.Status {
		case StatusOnGoing:
			st.OnGoing++
		case StatusPending:
			st.Pending++
		case StatusClosed:
			st.Closed++
		}
	}
	st.Total = len(s.projects)
	return st
}

// ToggleActivity flips one checklist item and re-derives the project state.
func (s *Service) ToggleActivity(ctx context.Context, projectID string, activityID int64) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}

	updated := Toggle(s.projects[idx], activityID, s.clock())
	s.publish(ctx, s.replaceAt(idx, updated))

	s.record(ctx, projectID, changelog.TypeActivityToggled,
		fmt.Sprintf("toggled activity %d on %s", activityID, projectID))
	return &updated, nil
}

// DuplicateActivity inserts a fresh copy of one checklist item.
func (s *Service) DuplicateActivity(ctx context.Context, projectID string, activityID int64) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}

	updated := Duplicate(s.projects[idx], activityID, s.clock())
	s.publish(ctx, s.replaceAt(idx, updated))

	s.record(ctx, projectID, changelog.TypeActivityDuplicated,
		fmt.Sprintf("duplicated activity %d on %s", activityID, projectID))
	return &updated, nil
}

// ChangeStatus applies a manual status change. Requesting the status the
// project is already effectively in is a no-op.
func (s *Service) ChangeStatus(ctx context.Context, projectID string, requested Status) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}

	updated, changed := ChangeStatus(s.projects[idx], requested, s.clock())
	if !changed {
		return &updated, nil
	}
	s.publish(ctx, s.replaceAt(idx, updated))

	s.record(ctx, projectID, changelog.TypeStatusChanged,
		fmt.Sprintf("changed status of %s to %s", projectID, updated.Status))
	return &updated, nil
}

// Update replaces the editable fields of a project from an edit form.
func (s *Service) Update(ctx context.Context, projectID string, fields UpdateFields) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}

	updated := ApplyUpdate(s.projects[idx], fields, s.clock())
	s.publish(ctx, s.replaceAt(idx, updated))

	s.record(ctx, projectID, changelog.TypeProjectUpdated,
		fmt.Sprintf("updated project %s", projectID))
	return &updated, nil
}

// Delete removes a project. Deleting an absent ID is a no-op.
func (s *Service) Delete(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Remove(s.projects, projectID)
	if len(next) == len(s.projects) {
		return nil
	}
	s.publish(ctx, next)

	s.record(ctx, projectID, changelog.TypeProjectDeleted,
		fmt.Sprintf("deleted project %s", projectID))
	return nil
}

// ImportMerge merges normalized imported projects into the collection.
// With replace the current collection is discarded; otherwise imported
// projects whose CRQ already exists (case-insensitive) are skipped and
// the rest prepended. Returns added, skipped, and the resulting size.
func (s *Service) ImportMerge(ctx context.Context, imported []Project, replace bool) (int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if replace {
		s.publish(ctx, imported)
		s.record(ctx, "", changelog.TypeProjectsImported,
			fmt.Sprintf("replaced collection with %d imported projects", len(imported)))
		return len(imported), 0, len(imported)
	}

	seen := make(map[string]struct{}, len(s.projects))
	for _, p := range s.projects {
		seen[strings.ToLower(p.ID)] = struct{}{}
	}

	fresh := make([]Project, 0, len(imported))
	skipped := 0
	for _, p := range imported {
		if _, dup := seen[strings.ToLower(p.ID)]; dup {
			skipped++
			continue
		}
		fresh = append(fresh, p)
	}

	next := make([]Project, 0, len(fresh)+len(s.projects))
	next = append(next, fresh...)
	next = append(next, s.projects...)
	s.publish(ctx, next)

	s.record(ctx, "", changelog.TypeProjectsImported,
		fmt.Sprintf("imported %d projects, skipped %d duplicates", len(fresh), skipped))
	return len(fresh), skipped, len(next)
}

// indexOf finds a project by exact ID. Callers hold s.mu.
func (s *Service) indexOf(id string) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// replaceAt returns a new collection with index idx swapped. Callers hold s.mu.
func (s *Service) replaceAt(idx int, p Project) []Project {
	next := make([]Project, len(s.projects))
	copy(next, s.projects)
	next[idx] = p
	return next
}

// publish replaces the collection and writes it through to the store.
// Persistence failures are logged, not returned. Callers hold s.mu.
func (s *Service) publish(ctx context.Context, next []Project) {
	s.projects = next

	data, err := json.Marshal(next)
	if err != nil {
		s.logger.Error("encoding project collection", "error", err)
		return
	}
	if err := s.store.Save(ctx, data); err != nil {
		s.logger.Warn("saving project collection, continuing in memory", "error", err)
	}
}

func (s *Service) record(ctx context.Context, projectID string, t changelog.ChangeType, summary string) {
	if s.changes == nil {
		return
	}
	entry := &changelog.Entry{
		ProjectID:  projectID,
		ChangeType: t,
		Summary:    summary,
		CreatedAt:  s.clock(),
	}
	if err := s.changes.Record(ctx, entry); err != nil {
		s.logger.Warn("recording change-log entry", "error", err)
	}
}
