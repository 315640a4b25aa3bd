package mcp

import (
	"encoding/json"

	"github.com/emarinelli/crqtrack/internal/domain/changelog"
	"github.com/emarinelli/crqtrack/internal/domain/extract"
	"github.com/emarinelli/crqtrack/internal/domain/project"
	"github.com/emarinelli/crqtrack/internal/domain/transfer"
)

type CreateProjectParams struct {
	CRQ             string               `json:"crq"`
	RagioneSociale  string               `json:"ragioneSociale"`
	Via             string               `json:"via,omitempty"`
	Citta           string               `json:"citta,omitempty"`
	Riepilogo       string               `json:"riepilogo,omitempty"`
	RiferimentoSede *project.SiteContact `json:"riferimentoSede,omitempty"`
}

type ListProjectsParams struct{}

type GetProjectParams struct {
	ID string `json:"id"`
}

type ProjectStatsParams struct{}

type ToggleActivityParams struct {
	ProjectID  string `json:"project_id"`
	ActivityID int64  `json:"activity_id"`
}

type DuplicateActivityParams struct {
	ProjectID  string `json:"project_id"`
	ActivityID int64  `json:"activity_id"`
}

type ChangeStatusParams struct {
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
}

type UpdateProjectParams struct {
	ProjectID       string               `json:"project_id"`
	RagioneSociale  string               `json:"ragioneSociale"`
	Via             string               `json:"via,omitempty"`
	Citta           string               `json:"citta,omitempty"`
	Riepilogo       string               `json:"riepilogo,omitempty"`
	RiferimentoSede *project.SiteContact `json:"riferimentoSede,omitempty"`
	Activities      []project.Activity   `json:"activities"`
}

type DeleteProjectParams struct {
	ProjectID string `json:"project_id"`
}

type ExportProjectsParams struct{}

type ImportProjectsParams struct {
	// Data is the JSON array of projects to import, as produced by
	// export_projects.
	Data json.RawMessage `json:"data"`
	// Mode is "append" (default) or "replace".
	Mode string `json:"mode,omitempty"`
}

type ExtractFieldsParams struct {
	Text string `json:"text"`
}

type RecentChangesParams struct {
	ProjectID string `json:"project_id,omitempty"`
	Type      string `json:"type,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

type ProjectResult struct {
	Project project.Project `json:"project"`
}

type ProjectListResult struct {
	Projects []project.Project `json:"projects"`
	Total    int               `json:"total"`
}

type StatsResult struct {
	Stats project.Stats `json:"stats"`
}

type DeleteResult struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

type ExportResult struct {
	Export transfer.Export `json:"export"`
}

type ImportResult struct {
	Report transfer.Report `json:"report"`
}

type ExtractResult struct {
	Fields extract.Fields `json:"fields"`
}

type RecentChangesResult struct {
	Entries []changelog.Entry `json:"entries"`
}
