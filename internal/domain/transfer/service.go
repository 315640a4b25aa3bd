package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/emarinelli/crqtrack/internal/domain/project"
)

// Collection is the slice of the project service the transfer operations
// need: a snapshot for export and an atomic merge for import.
type Collection interface {
	List(ctx context.Context) []project.Project
	ImportMerge(ctx context.Context, imported []project.Project, replace bool) (added, skipped, total int)
}

// Export carries a rendered export payload plus its suggested filename.
type Export struct {
	Filename string          `json:"filename"`
	Content  json.RawMessage `json:"content"`
}

// Service runs export and import against the project collection.
type Service struct {
	projects Collection
	logger   *slog.Logger
	clock    func() time.Time
}

// NewService creates a new transfer service.
func NewService(projects Collection, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{projects: projects, logger: logger, clock: time.Now}
}

// ExportProjects renders the current collection as a downloadable payload.
func (s *Service) ExportProjects(ctx context.Context) (*Export, error) {
	projects := s.projects.List(ctx)
	content, filename, err := BuildExport(projects, s.clock())
	if err != nil {
		return nil, err
	}
	s.logger.Info("exported projects", "count", len(projects), "filename", filename)
	return &Export{Filename: filename, Content: content}, nil
}

// ImportProjects parses an import payload and merges it into the
// collection according to mode.
func (s *Service) ImportProjects(ctx context.Context, data []byte, mode Mode) (*Report, error) {
	if mode != ModeAppend && mode != ModeReplace {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	valid, dropped, err := ParseImport(data, s.clock())
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		s.logger.Warn("dropped invalid import records", "count", dropped)
	}

	added, skipped, total := s.projects.ImportMerge(ctx, valid, mode == ModeReplace)
	s.logger.Info("imported projects", "mode", mode, "added", added, "skipped", skipped)

	return &Report{
		Imported: added,
		Skipped:  skipped,
		Dropped:  dropped,
		Total:    total,
		Mode:     mode,
	}, nil
}
