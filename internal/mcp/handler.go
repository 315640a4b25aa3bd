package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/emarinelli/crqtrack/internal/domain/changelog"
	"github.com/emarinelli/crqtrack/internal/domain/extract"
	"github.com/emarinelli/crqtrack/internal/domain/project"
	"github.com/emarinelli/crqtrack/internal/domain/transfer"
)

// Handler dispatches tool calls arriving over the plain JSON-RPC transport.
// It exposes the same operations as the MCP server tools.
type Handler struct {
	projects  ProjectService
	transfers TransferService
	changes   ChangeLogService
}

// NewHandler creates a new handler.
func NewHandler(projects ProjectService, transfers TransferService, changes ChangeLogService) *Handler {
	return &Handler{
		projects:  projects,
		transfers: transfers,
		changes:   changes,
	}
}

// Handle dispatches a request to the domain services.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "create_project":
		var req CreateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		cr := project.CreateRequest{
			CRQ:            req.CRQ,
			RagioneSociale: req.RagioneSociale,
			Via:            req.Via,
			Citta:          req.Citta,
			Riepilogo:      req.Riepilogo,
		}
		if req.RiferimentoSede != nil {
			cr.RiferimentoSede = *req.RiferimentoSede
		}
		p, err := h.projects.Create(ctx, cr)
		if err != nil {
			return nil, mapError(err)
		}
		return ProjectResult{Project: *p}, nil

	case "list_projects":
		list := h.projects.List(ctx)
		return ProjectListResult{Projects: list, Total: len(list)}, nil

	case "get_project":
		var req GetProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		p, err := h.projects.Get(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return ProjectResult{Project: *p}, nil

	case "project_stats":
		return StatsResult{Stats: h.projects.Stats(ctx)}, nil

	case "toggle_activity":
		var req ToggleActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		p, err := h.projects.ToggleActivity(ctx, req.ProjectID, req.ActivityID)
		if err != nil {
			return nil, mapError(err)
		}
		return ProjectResult{Project: *p}, nil

	case "duplicate_activity":
		var req DuplicateActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		p, err := h.projects.DuplicateActivity(ctx, req.ProjectID, req.ActivityID)
		if err != nil {
			return nil, mapError(err)
		}
		return ProjectResult{Project: *p}, nil

	case "change_project_status":
		var req ChangeStatusParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		status := project.Status(req.Status)
		if !status.Valid() {
			return nil, mapError(project.ErrInvalidStatus)
		}
		p, err := h.projects.ChangeStatus(ctx, req.ProjectID, status)
		if err != nil {
			return nil, mapError(err)
		}
		return ProjectResult{Project: *p}, nil

	case "update_project":
		var req UpdateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		fields := project.UpdateFields{
			RagioneSociale: req.RagioneSociale,
			Via:            req.Via,
			Citta:          req.Citta,
			Riepilogo:      req.Riepilogo,
			Activities:     req.Activities,
		}
		if req.RiferimentoSede != nil {
			fields.RiferimentoSede = *req.RiferimentoSede
		}
		p, err := h.projects.Update(ctx, req.ProjectID, fields)
		if err != nil {
			return nil, mapError(err)
		}
		return ProjectResult{Project: *p}, nil

	case "delete_project":
		var req DeleteProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.projects.Delete(ctx, req.ProjectID); err != nil {
			return nil, mapError(err)
		}
		return DeleteResult{Deleted: true, ID: req.ProjectID}, nil

	case "export_projects":
		exp, err := h.transfers.ExportProjects(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return ExportResult{Export: *exp}, nil

	case "import_projects":
		var req ImportProjectsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		mode := transfer.Mode(req.Mode)
		if mode == "" {
			mode = transfer.ModeAppend
		}
		report, err := h.transfers.ImportProjects(ctx, req.Data, mode)
		if err != nil {
			return nil, mapError(err)
		}
		return ImportResult{Report: *report}, nil

	case "extract_project_fields":
		var req ExtractFieldsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return ExtractResult{Fields: extract.Extract(req.Text)}, nil

	case "recent_changes":
		var req RecentChangesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		opts := changelog.ListOptions{
			ProjectID: req.ProjectID,
			Limit:     req.Limit,
		}
		if req.Type != "" {
			t := changelog.ChangeType(req.Type)
			opts.Type = &t
		}
		entries, err := h.changes.Recent(ctx, opts)
		if err != nil {
			return nil, mapError(err)
		}
		return RecentChangesResult{Entries: entries}, nil

	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func decodeParams(params json.RawMessage, dst any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}
