// Package transfer implements bulk JSON export and import of the project
// collection, including per-record validation and merge semantics.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/emarinelli/crqtrack/internal/domain/project"
)

// Mode selects how imported projects merge with the existing collection.
type Mode string

const (
	// ModeAppend keeps the existing collection and prepends imported
	// projects whose CRQ is not already present (case-insensitive).
	ModeAppend Mode = "append"
	// ModeReplace discards the existing collection entirely.
	ModeReplace Mode = "replace"
)

var (
	// ErrInvalidFormat indicates the payload is not a JSON array of projects.
	ErrInvalidFormat = errors.New("import payload must be a JSON array of projects")
	// ErrNoValidProjects indicates every record in the payload was invalid.
	ErrNoValidProjects = errors.New("no valid projects found in import payload")
	// ErrInvalidMode indicates an unknown merge mode.
	ErrInvalidMode = errors.New("invalid merge mode")
)

// Report summarizes an import operation.
type Report struct {
	Imported int  `json:"imported"`
	Skipped  int  `json:"skipped"`
	Dropped  int  `json:"dropped"`
	Total    int  `json:"total"`
	Mode     Mode `json:"mode"`
}

// BuildExport renders the collection as a pretty-printed JSON array plus
// the dated export filename. Exporting an empty collection is refused.
func BuildExport(projects []project.Project, now time.Time) ([]byte, string, error) {
	if len(projects) == 0 {
		return nil, "", project.ErrNoProjects
	}
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("encoding projects: %w", err)
	}
	filename := fmt.Sprintf("projects_crq_%s.json", now.Format("2006-01-02"))
	return data, filename, nil
}

// ParseImport decodes and normalizes an import payload. Individual invalid
// records are dropped and counted, not fatal; an unparseable or non-array
// payload fails with ErrInvalidFormat, and a payload with zero surviving
// records fails with ErrNoValidProjects.
func ParseImport(data []byte, now time.Time) ([]project.Project, int, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	valid := make([]project.Project, 0, len(items))
	dropped := 0
	for _, item := range items {
		var raw project.Raw
		if err := json.Unmarshal(item, &raw); err != nil {
			dropped++
			continue
		}
		p, err := project.Normalize(raw, now)
		if err != nil {
			dropped++
			continue
		}
		valid = append(valid, p)
	}

	if len(valid) == 0 {
		return nil, dropped, ErrNoValidProjects
	}
	return valid, dropped, nil
}
