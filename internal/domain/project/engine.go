package project

import (
	"strings"
	"time"
)

// Derive computes the status implied by the activity checklist. Pending is
// a manual override and survives activity edits until explicitly cleared.
func Derive(activities []Activity, current Status) Status {
	if current == StatusPending {
		return StatusPending
	}
	if allCompleted(activities) {
		return StatusClosed
	}
	return StatusOnGoing
}

func allCompleted(activities []Activity) bool {
	for _, a := range activities {
		if !a.Completed {
			return false
		}
	}
	return true
}

// CreateRequest carries the fields for a new project.
type CreateRequest struct {
	CRQ             string
	RagioneSociale  string
	Via             string
	Citta           string
	Riepilogo       string
	RiferimentoSede SiteContact
}

// New builds a project from req with a fresh activity template. existingIDs
// holds the CRQ numbers already in the collection; comparison is
// case-insensitive.
func New(req CreateRequest, existingIDs []string, now time.Time) (Project, error) {
	crq := strings.TrimSpace(req.CRQ)
	if crq == "" || strings.TrimSpace(req.RagioneSociale) == "" {
		return Project{}, ErrMissingRequiredField
	}
	for _, id := range existingIDs {
		if strings.EqualFold(id, crq) {
			return Project{}, ErrDuplicateID
		}
	}
	return Project{
		ID:              crq,
		RagioneSociale:  req.RagioneSociale,
		Via:             req.Via,
		Citta:           req.Citta,
		Riepilogo:       req.Riepilogo,
		RiferimentoSede: req.RiferimentoSede,
		Activities:      TemplateActivities(),
		Status:          StatusOnGoing,
		CreatedAt:       now,
		UpdatedAt:       now,
		CompletedAt:     nil,
	}, nil
}

// Toggle flips the completion flag of the matching activity and re-derives
// status and completedAt. While the project is pending the checklist still
// changes and updatedAt advances, but status and completedAt stay untouched.
func Toggle(p Project, activityID int64, now time.Time) Project {
	next := p
	next.Activities = CloneActivities(p.Activities)
	for i := range next.Activities {
		if next.Activities[i].ID == activityID {
			next.Activities[i].Completed = !next.Activities[i].Completed
		}
	}
	next.UpdatedAt = now

	if p.Status == StatusPending {
		return next
	}

	newStatus := StatusOnGoing
	if allCompleted(next.Activities) {
		newStatus = StatusClosed
	}
	next.Status = newStatus

	switch {
	case newStatus == StatusClosed && p.Status != StatusClosed:
		t := now
		next.CompletedAt = &t
	case newStatus == StatusOnGoing && p.Status == StatusClosed:
		next.CompletedAt = nil
	}
	return next
}

// Duplicate inserts a fresh incomplete copy of the matching activity right
// after it. An unknown activity ID leaves the project unchanged.
// Duplicating always introduces an incomplete item, so outside the pending
// override the status falls back to on going.
func Duplicate(p Project, activityID int64, now time.Time) Project {
	idx := -1
	for i, a := range p.Activities {
		if a.ID == activityID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return p
	}

	src := p.Activities[idx]
	dup := Activity{
		ID:        nextActivityID(p.Activities),
		Name:      src.Name + " (copia)",
		Completed: false,
	}

	next := p
	next.Activities = make([]Activity, 0, len(p.Activities)+1)
	next.Activities = append(next.Activities, p.Activities[:idx+1]...)
	next.Activities = append(next.Activities, dup)
	next.Activities = append(next.Activities, p.Activities[idx+1:]...)

	if p.Status == StatusPending {
		next.Status = StatusPending
	} else {
		next.Status = StatusOnGoing
	}
	if p.Status == StatusClosed && next.Status == StatusOnGoing {
		next.CompletedAt = nil
	}
	next.UpdatedAt = now
	return next
}

func nextActivityID(activities []Activity) int64 {
	var max int64
	for _, a := range activities {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}

// ChangeStatus applies a requested status change. Requesting pending forces
// pending; any other request re-derives from the checklist ignoring the
// pending override. The second return is false when the effective status
// already equals the current one, in which case p is returned untouched.
func ChangeStatus(p Project, requested Status, now time.Time) (Project, bool) {
	var final Status
	if requested == StatusPending {
		final = StatusPending
	} else if allCompleted(p.Activities) {
		final = StatusClosed
	} else {
		final = StatusOnGoing
	}

	if final == p.Status {
		return p, false
	}

	next := p
	next.Status = final
	next.UpdatedAt = now

	switch {
	case (final == StatusPending || final == StatusClosed) && p.Status == StatusOnGoing:
		t := now
		next.CompletedAt = &t
	case final == StatusOnGoing && (p.Status == StatusPending || p.Status == StatusClosed):
		next.CompletedAt = nil
	}
	return next, true
}

// UpdateFields carries the editable fields for a bulk update.
type UpdateFields struct {
	RagioneSociale  string
	Via             string
	Citta           string
	Riepilogo       string
	RiferimentoSede SiteContact
	Activities      []Activity
}

// ApplyUpdate replaces the editable fields of p. Status and completedAt are
// re-derived from the new checklist unless the project is pending.
// updatedAt advances only when the checklist content actually changed;
// metadata-only edits keep the previous timestamp.
func ApplyUpdate(p Project, fields UpdateFields, now time.Time) Project {
	next := p
	next.RagioneSociale = fields.RagioneSociale
	next.Via = fields.Via
	next.Citta = fields.Citta
	next.Riepilogo = fields.Riepilogo
	next.RiferimentoSede = fields.RiferimentoSede
	next.Activities = CloneActivities(fields.Activities)

	newStatus := p.Status
	if p.Status != StatusPending {
		if allCompleted(next.Activities) {
			newStatus = StatusClosed
		} else {
			newStatus = StatusOnGoing
		}
	}
	next.Status = newStatus

	switch {
	case newStatus == StatusClosed && p.Status != StatusClosed:
		t := now
		next.CompletedAt = &t
	case newStatus == StatusOnGoing && p.Status == StatusClosed:
		next.CompletedAt = nil
	}

	if !ActivitiesEqual(p.Activities, fields.Activities) {
		next.UpdatedAt = now
	}
	return next
}

// Remove deletes the project with the exact ID from the collection.
// Removing an absent ID is a no-op.
func Remove(projects []Project, id string) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
