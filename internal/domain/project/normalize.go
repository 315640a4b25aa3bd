package project

import (
	"strings"
	"time"
)

// Raw is the loosely-typed shape of a stored or imported project record.
// Pointer fields distinguish "present" from "absent"; a field that is
// present but null is treated the same as an absent one.
type Raw struct {
	ID              string      `json:"id"`
	RagioneSociale  string      `json:"ragioneSociale"`
	Via             string      `json:"via"`
	Citta           string      `json:"citta"`
	Riepilogo       string      `json:"riepilogo"`
	RiferimentoSede SiteContact `json:"riferimentoSede"`
	Activities      *[]Activity `json:"activities"`
	Status          string      `json:"status"`
	CreatedAt       *time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time  `json:"updatedAt"`
	CompletedAt     *time.Time  `json:"completedAt"`
}

// Normalize validates and migrates a raw record into a Project that honors
// every collection invariant. Records missing id, ragioneSociale, or
// activities fail with ErrInvalidRecord. A recognized stored status wins;
// otherwise status is derived from the checklist (pending is never
// inferred). Missing timestamps default to now, and a missing completedAt
// defaults to updatedAt when the status is closed or pending.
// The same normalization runs for the persisted store and for imports so
// both paths converge on identical invariants.
func Normalize(raw Raw, now time.Time) (Project, error) {
	if strings.TrimSpace(raw.ID) == "" || strings.TrimSpace(raw.RagioneSociale) == "" || raw.Activities == nil {
		return Project{}, ErrInvalidRecord
	}

	activities := CloneActivities(*raw.Activities)

	status := Status(raw.Status)
	if !status.Valid() {
		if allCompleted(activities) {
			status = StatusClosed
		} else {
			status = StatusOnGoing
		}
	}

	createdAt := now
	if raw.CreatedAt != nil {
		createdAt = *raw.CreatedAt
	}
	updatedAt := now
	if raw.UpdatedAt != nil {
		updatedAt = *raw.UpdatedAt
	}

	completedAt := raw.CompletedAt
	if completedAt == nil && (status == StatusClosed || status == StatusPending) {
		t := updatedAt
		completedAt = &t
	}
	if status == StatusOnGoing {
		completedAt = nil
	}

	return Project{
		ID:              raw.ID,
		RagioneSociale:  raw.RagioneSociale,
		Via:             raw.Via,
		Citta:           raw.Citta,
		Riepilogo:       raw.Riepilogo,
		RiferimentoSede: raw.RiferimentoSede,
		Activities:      activities,
		Status:          status,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		CompletedAt:     completedAt,
	}, nil
}
