package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist in the collection.
	ErrProjectNotFound = errors.New("project not found")
	// ErrDuplicateID indicates a project with the same CRQ already exists.
	ErrDuplicateID = errors.New("a project with this CRQ number already exists")
	// ErrMissingRequiredField indicates CRQ or ragione sociale is blank.
	ErrMissingRequiredField = errors.New("CRQ number and ragione sociale are required")
	// ErrInvalidRecord indicates a stored or imported record is missing
	// id, ragioneSociale, or activities.
	ErrInvalidRecord = errors.New("invalid project record")
	// ErrNoProjects indicates there is nothing to export.
	ErrNoProjects = errors.New("no projects to export")
	// ErrInvalidStatus indicates an unrecognized status value.
	ErrInvalidStatus = errors.New("invalid status")
)
