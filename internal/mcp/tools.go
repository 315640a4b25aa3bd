package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emarinelli/crqtrack/internal/domain/changelog"
	"github.com/emarinelli/crqtrack/internal/domain/extract"
	"github.com/emarinelli/crqtrack/internal/domain/project"
	"github.com/emarinelli/crqtrack/internal/domain/transfer"
)

// registerTools adds all tools to the server with typed handlers.
func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new CRQ project with the standard provisioning checklist",
	}, createProjectHandler(svc.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects, most recently created first",
	}, listProjectsHandler(svc.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get one project by its CRQ number",
	}, getProjectHandler(svc.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_stats",
		Description: "Count projects per status (on going, pending, closed)",
	}, projectStatsHandler(svc.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_activity",
		Description: "Toggle one checklist activity and re-derive the project status",
	}, toggleActivityHandler(svc.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "duplicate_activity",
		Description: "Insert a copy of a checklist activity right after the original",
	}, duplicateActivityHandler(svc.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "change_project_status",
		Description: "Put a project on hold (pending) or resume it; resuming re-derives the status from the checklist",
	}, changeStatusHandler(svc.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project",
		Description: "Replace the editable fields of a project, including its checklist",
	}, updateProjectHandler(svc.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project; deleting an unknown CRQ is a no-op",
	}, deleteProjectHandler(svc.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_projects",
		Description: "Export the whole collection as a dated JSON document",
	}, exportProjectsHandler(svc.Transfer))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "import_projects",
		Description: "Import a JSON array of projects, appending to or replacing the collection",
	}, importProjectsHandler(svc.Transfer))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "extract_project_fields",
		Description: "Extract CRQ number, company, address, and contact fields from pasted free text",
	}, extractFieldsHandler())

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_changes",
		Description: "List recent change-log entries, optionally filtered by project or change type",
	}, recentChangesHandler(svc.Changes))
}

func createProjectHandler(projects ProjectService) sdkmcp.ToolHandlerFor[CreateProjectParams, ProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input CreateProjectParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
		req := project.CreateRequest{
			CRQ:            input.CRQ,
			RagioneSociale: input.RagioneSociale,
			Via:            input.Via,
			Citta:          input.Citta,
			Riepilogo:      input.Riepilogo,
		}
		if input.RiferimentoSede != nil {
			req.RiferimentoSede = *input.RiferimentoSede
		}
		p, err := projects.Create(ctx, req)
		if err != nil {
			return nil, ProjectResult{}, mapError(err)
		}
		return nil, ProjectResult{Project: *p}, nil
	}
}

func listProjectsHandler(projects ProjectService) sdkmcp.ToolHandlerFor[ListProjectsParams, ProjectListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsParams) (*sdkmcp.CallToolResult, ProjectListResult, error) {
		list := projects.List(ctx)
		return nil, ProjectListResult{Projects: list, Total: len(list)}, nil
	}
}

func getProjectHandler(projects ProjectService) sdkmcp.ToolHandlerFor[GetProjectParams, ProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input GetProjectParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
		p, err := projects.Get(ctx, input.ID)
		if err != nil {
			return nil, ProjectResult{}, mapError(err)
		}
		return nil, ProjectResult{Project: *p}, nil
	}
}

func projectStatsHandler(projects ProjectService) sdkmcp.ToolHandlerFor[ProjectStatsParams, StatsResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ProjectStatsParams) (*sdkmcp.CallToolResult, StatsResult, error) {
		return nil, StatsResult{Stats: projects.Stats(ctx)}, nil
	}
}

func toggleActivityHandler(projects ProjectService) sdkmcp.ToolHandlerFor[ToggleActivityParams, ProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ToggleActivityParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
		p, err := projects.ToggleActivity(ctx, input.ProjectID, input.ActivityID)
		if err != nil {
			return nil, ProjectResult{}, mapError(err)
		}
		return nil, ProjectResult{Project: *p}, nil
	}
}

func duplicateActivityHandler(projects ProjectService) sdkmcp.ToolHandlerFor[DuplicateActivityParams, ProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input DuplicateActivityParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
		p, err := projects.DuplicateActivity(ctx, input.ProjectID, input.ActivityID)
		if err != nil {
			return nil, ProjectResult{}, mapError(err)
		}
		return nil, ProjectResult{Project: *p}, nil
	}
}

func changeStatusHandler(projects ProjectService) sdkmcp.ToolHandlerFor[ChangeStatusParams, ProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ChangeStatusParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
		status := project.Status(input.Status)
		if !status.Valid() {
			return nil, ProjectResult{}, mapError(project.ErrInvalidStatus)
		}
		p, err := projects.ChangeStatus(ctx, input.ProjectID, status)
		if err != nil {
			return nil, ProjectResult{}, mapError(err)
		}
		return nil, ProjectResult{Project: *p}, nil
	}
}

func updateProjectHandler(projects ProjectService) sdkmcp.ToolHandlerFor[UpdateProjectParams, ProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input UpdateProjectParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
		fields := project.UpdateFields{
			RagioneSociale: input.RagioneSociale,
			Via:            input.Via,
			Citta:          input.Citta,
			Riepilogo:      input.Riepilogo,
			Activities:     input.Activities,
		}
		if input.RiferimentoSede != nil {
			fields.RiferimentoSede = *input.RiferimentoSede
		}
		p, err := projects.Update(ctx, input.ProjectID, fields)
		if err != nil {
			return nil, ProjectResult{}, mapError(err)
		}
		return nil, ProjectResult{Project: *p}, nil
	}
}

func deleteProjectHandler(projects ProjectService) sdkmcp.ToolHandlerFor[DeleteProjectParams, DeleteResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input DeleteProjectParams) (*sdkmcp.CallToolResult, DeleteResult, error) {
		if err := projects.Delete(ctx, input.ProjectID); err != nil {
			return nil, DeleteResult{}, mapError(err)
		}
		return nil, DeleteResult{Deleted: true, ID: input.ProjectID}, nil
	}
}

func exportProjectsHandler(transfers TransferService) sdkmcp.ToolHandlerFor[ExportProjectsParams, ExportResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ExportProjectsParams) (*sdkmcp.CallToolResult, ExportResult, error) {
		exp, err := transfers.ExportProjects(ctx)
		if err != nil {
			return nil, ExportResult{}, mapError(err)
		}
		return nil, ExportResult{Export: *exp}, nil
	}
}

func importProjectsHandler(transfers TransferService) sdkmcp.ToolHandlerFor[ImportProjectsParams, ImportResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ImportProjectsParams) (*sdkmcp.CallToolResult, ImportResult, error) {
		mode := transfer.Mode(input.Mode)
		if mode == "" {
			mode = transfer.ModeAppend
		}
		report, err := transfers.ImportProjects(ctx, input.Data, mode)
		if err != nil {
			return nil, ImportResult{}, mapError(err)
		}
		return nil, ImportResult{Report: *report}, nil
	}
}

func extractFieldsHandler() sdkmcp.ToolHandlerFor[ExtractFieldsParams, ExtractResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ExtractFieldsParams) (*sdkmcp.CallToolResult, ExtractResult, error) {
		return nil, ExtractResult{Fields: extract.Extract(input.Text)}, nil
	}
}

func recentChangesHandler(changes ChangeLogService) sdkmcp.ToolHandlerFor[RecentChangesParams, RecentChangesResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input RecentChangesParams) (*sdkmcp.CallToolResult, RecentChangesResult, error) {
		opts := changelog.ListOptions{
			ProjectID: input.ProjectID,
			Limit:     input.Limit,
		}
		if input.Type != "" {
			t := changelog.ChangeType(input.Type)
			opts.Type = &t
		}
		entries, err := changes.Recent(ctx, opts)
		if err != nil {
			return nil, RecentChangesResult{}, mapError(err)
		}
		return nil, RecentChangesResult{Entries: entries}, nil
	}
}
