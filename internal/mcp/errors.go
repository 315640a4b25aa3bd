package mcp

import (
	"errors"
	"fmt"

	"github.com/emarinelli/crqtrack/internal/domain/project"
	"github.com/emarinelli/crqtrack/internal/domain/transfer"
	"github.com/emarinelli/crqtrack/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// mapError maps domain errors to MCP error codes. Unknown errors pass
// through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the CRQ number; IDs match exactly"}
	case errors.Is(err, project.ErrDuplicateID):
		return &APIError{Code: "DUPLICATE_ID", Message: "a project with this CRQ number already exists", RecoveryHint: "CRQ numbers are unique ignoring case"}
	case errors.Is(err, project.ErrMissingRequiredField):
		return &APIError{Code: "MISSING_REQUIRED_FIELD", Message: "CRQ number and ragione sociale are required"}
	case errors.Is(err, project.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: "unrecognized status value", RecoveryHint: "Use 'on going', 'pending', or 'closed'"}
	case errors.Is(err, project.ErrNoProjects):
		return &APIError{Code: "NO_PROJECTS", Message: "no projects to export"}
	case errors.Is(err, transfer.ErrInvalidFormat):
		return &APIError{Code: "INVALID_FORMAT", Message: "import payload must be a JSON array of projects"}
	case errors.Is(err, transfer.ErrNoValidProjects):
		return &APIError{Code: "NO_VALID_PROJECTS", Message: "no valid projects found in import payload", RecoveryHint: "Each record needs id, ragioneSociale, and activities"}
	case errors.Is(err, transfer.ErrInvalidMode):
		return &APIError{Code: "INVALID_MODE", Message: "unrecognized merge mode", RecoveryHint: "Use 'append' or 'replace'"}
	case errors.Is(err, repository.ErrStorageUnavailable):
		return &APIError{Code: "STORAGE_UNAVAILABLE", Message: "storage is unavailable, changes are kept in memory only"}
	default:
		return err
	}
}
