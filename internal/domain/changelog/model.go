package changelog

import "time"

// ChangeType classifies a change-log entry.
type ChangeType string

const (
	TypeProjectCreated     ChangeType = "project_created"
	TypeActivityToggled    ChangeType = "activity_toggled"
	TypeActivityDuplicated ChangeType = "activity_duplicated"
	TypeStatusChanged      ChangeType = "status_changed"
	TypeProjectUpdated     ChangeType = "project_updated"
	TypeProjectDeleted     ChangeType = "project_deleted"
	TypeProjectsImported   ChangeType = "projects_imported"
)

// Entry records one engine mutation for the audit trail.
type Entry struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	ChangeType ChangeType `json:"type"`
	Summary    string     `json:"summary"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ListOptions filters change-log queries.
type ListOptions struct {
	ProjectID string
	Type      *ChangeType
	Limit     int
}
