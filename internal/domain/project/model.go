package project

import "time"

// Status is the workflow state of a project.
type Status string

const (
	StatusOnGoing Status = "on going"
	StatusPending Status = "pending"
	StatusClosed  Status = "closed"
)

// Valid reports whether s is one of the recognized status values.
func (s Status) Valid() bool {
	switch s {
	case StatusOnGoing, StatusPending, StatusClosed:
		return true
	}
	return false
}

// Activity is one checklist item in a project's provisioning workflow.
type Activity struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// SiteContact holds the optional on-site contact for a project.
type SiteContact struct {
	Referente string `json:"referente,omitempty"`
	Tel       string `json:"tel,omitempty"`
}

// Project is a CRQ work order. The ID is the CRQ number itself and is
// unique case-insensitively across the collection. JSON field names match
// the persisted format.
type Project struct {
	ID              string      `json:"id"`
	RagioneSociale  string      `json:"ragioneSociale"`
	Via             string      `json:"via"`
	Citta           string      `json:"citta"`
	Riepilogo       string      `json:"riepilogo,omitempty"`
	RiferimentoSede SiteContact `json:"riferimentoSede"`
	Activities      []Activity  `json:"activities"`
	Status          Status      `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	CompletedAt     *time.Time  `json:"completedAt"`
}

// Stats counts projects per status.
type Stats struct {
	OnGoing int `json:"on_going"`
	Pending int `json:"pending"`
	Closed  int `json:"closed"`
	Total   int `json:"total"`
}

// CloneActivities returns a copy of the activity list.
func CloneActivities(activities []Activity) []Activity {
	out := make([]Activity, len(activities))
	copy(out, activities)
	return out
}

// ActivitiesEqual reports structural equality of two ordered activity
// lists, including names and completion flags.
func ActivitiesEqual(a, b []Activity) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
