package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emarinelli/crqtrack/internal/domain/changelog"
	"github.com/emarinelli/crqtrack/internal/domain/project"
	"github.com/emarinelli/crqtrack/internal/domain/transfer"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) []project.Project
	Stats(ctx context.Context) project.Stats
	ToggleActivity(ctx context.Context, projectID string, activityID int64) (*project.Project, error)
	DuplicateActivity(ctx context.Context, projectID string, activityID int64) (*project.Project, error)
	ChangeStatus(ctx context.Context, projectID string, requested project.Status) (*project.Project, error)
	Update(ctx context.Context, projectID string, fields project.UpdateFields) (*project.Project, error)
	Delete(ctx context.Context, projectID string) error
}

// TransferService defines export and import operations needed by MCP.
type TransferService interface {
	ExportProjects(ctx context.Context) (*transfer.Export, error)
	ImportProjects(ctx context.Context, data []byte, mode transfer.Mode) (*transfer.Report, error)
}

// ChangeLogService defines audit-trail operations needed by MCP.
type ChangeLogService interface {
	Recent(ctx context.Context, opts changelog.ListOptions) ([]changelog.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Transfer TransferService
	Changes  ChangeLogService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "crqtrack",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}

const serverInstructions = `CRQ project tracker for fiber provisioning work orders.

Each project is identified by its CRQ change-request number and carries a
fixed provisioning checklist. Project status is derived from the checklist:
all activities done means closed, otherwise on going. A project put on hold
with change_project_status(pending) keeps that status until it is manually
resumed or closed.

Use create_project to open a work order (extract_project_fields can prefill
the form from a pasted email or ticket), toggle_activity to track progress,
and export_projects/import_projects to move whole collections between
installations.`
