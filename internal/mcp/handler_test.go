package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emarinelli/crqtrack/internal/domain/changelog"
	"github.com/emarinelli/crqtrack/internal/domain/project"
	"github.com/emarinelli/crqtrack/internal/domain/transfer"
)

type projectStub struct {
	createFn       func(context.Context, project.CreateRequest) (*project.Project, error)
	getFn          func(context.Context, string) (*project.Project, error)
	listFn         func(context.Context) []project.Project
	statsFn        func(context.Context) project.Stats
	toggleFn       func(context.Context, string, int64) (*project.Project, error)
	duplicateFn    func(context.Context, string, int64) (*project.Project, error)
	changeStatusFn func(context.Context, string, project.Status) (*project.Project, error)
	updateFn       func(context.Context, string, project.UpdateFields) (*project.Project, error)
	deleteFn       func(context.Context, string) error
}

func (p projectStub) Create(ctx context.Context, req project.CreateRequest) (*project.Project, error) {
	return p.createFn(ctx, req)
}
func (p projectStub) Get(ctx context.Context, id string) (*project.Project, error) {
	return p.getFn(ctx, id)
}
func (p projectStub) List(ctx context.Context) []project.Project {
	return p.listFn(ctx)
}
func (p projectStub) Stats(ctx context.Context) project.Stats {
	return p.statsFn(ctx)
}
func (p projectStub) ToggleActivity(ctx context.Context, projectID string, activityID int64) (*project.Project, error) {
	return p.toggleFn(ctx, projectID, activityID)
}
func (p projectStub) DuplicateActivity(ctx context.Context, projectID string, activityID int64) (*project.Project, error) {
	return p.duplicateFn(ctx, projectID, activityID)
}
func (p projectStub) ChangeStatus(ctx context.Context, projectID string, requested project.Status) (*project.Project, error) {
	return p.changeStatusFn(ctx, projectID, requested)
}
func (p projectStub) Update(ctx context.Context, projectID string, fields project.UpdateFields) (*project.Project, error) {
	return p.updateFn(ctx, projectID, fields)
}
func (p projectStub) Delete(ctx context.Context, projectID string) error {
	return p.deleteFn(ctx, projectID)
}

type transferStub struct {
	exportFn func(context.Context) (*transfer.Export, error)
	importFn func(context.Context, []byte, transfer.Mode) (*transfer.Report, error)
}

func (t transferStub) ExportProjects(ctx context.Context) (*transfer.Export, error) {
	return t.exportFn(ctx)
}
func (t transferStub) ImportProjects(ctx context.Context, data []byte, mode transfer.Mode) (*transfer.Report, error) {
	return t.importFn(ctx, data, mode)
}

type changeLogStub struct {
	recentFn func(context.Context, changelog.ListOptions) ([]changelog.Entry, error)
}

func (c changeLogStub) Recent(ctx context.Context, opts changelog.ListOptions) ([]changelog.Entry, error) {
	return c.recentFn(ctx, opts)
}

func TestHandleCreateProject(t *testing.T) {
	var got project.CreateRequest
	h := NewHandler(projectStub{
		createFn: func(_ context.Context, req project.CreateRequest) (*project.Project, error) {
			got = req
			return &project.Project{ID: req.CRQ, RagioneSociale: req.RagioneSociale, Status: project.StatusOnGoing}, nil
		},
	}, nil, nil)

	params := json.RawMessage(`{"crq":"CRQ000123","ragioneSociale":"Acme Srl","via":"Via Roma 10","riferimentoSede":{"referente":"Mario Rossi","tel":"02 1234567"}}`)
	result, err := h.Handle(context.Background(), "create_project", params)
	require.NoError(t, err)

	require.Equal(t, "CRQ000123", got.CRQ)
	require.Equal(t, "Acme Srl", got.RagioneSociale)
	require.Equal(t, "Via Roma 10", got.Via)
	require.Equal(t, "Mario Rossi", got.RiferimentoSede.Referente)

	res, ok := result.(ProjectResult)
	require.True(t, ok)
	require.Equal(t, "CRQ000123", res.Project.ID)
}

func TestHandleCreateProjectDuplicate(t *testing.T) {
	h := NewHandler(projectStub{
		createFn: func(context.Context, project.CreateRequest) (*project.Project, error) {
			return nil, project.ErrDuplicateID
		},
	}, nil, nil)

	_, err := h.Handle(context.Background(), "create_project", json.RawMessage(`{"crq":"CRQ000123","ragioneSociale":"Acme"}`))
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "DUPLICATE_ID", apiErr.Code)
}

func TestHandleGetProjectNotFound(t *testing.T) {
	h := NewHandler(projectStub{
		getFn: func(context.Context, string) (*project.Project, error) {
			return nil, project.ErrProjectNotFound
		},
	}, nil, nil)

	_, err := h.Handle(context.Background(), "get_project", json.RawMessage(`{"id":"CRQ999999"}`))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "PROJECT_NOT_FOUND", apiErr.Code)
}

func TestHandleToggleActivity(t *testing.T) {
	h := NewHandler(projectStub{
		toggleFn: func(_ context.Context, projectID string, activityID int64) (*project.Project, error) {
			require.Equal(t, "CRQ000123", projectID)
			require.Equal(t, int64(3), activityID)
			return &project.Project{ID: projectID, Status: project.StatusOnGoing}, nil
		},
	}, nil, nil)

	result, err := h.Handle(context.Background(), "toggle_activity", json.RawMessage(`{"project_id":"CRQ000123","activity_id":3}`))
	require.NoError(t, err)
	require.Equal(t, "CRQ000123", result.(ProjectResult).Project.ID)
}

func TestHandleChangeStatusInvalid(t *testing.T) {
	h := NewHandler(projectStub{}, nil, nil)

	_, err := h.Handle(context.Background(), "change_project_status", json.RawMessage(`{"project_id":"CRQ000123","status":"sospeso"}`))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_STATUS", apiErr.Code)
}

func TestHandleImportDefaultsToAppend(t *testing.T) {
	var gotMode transfer.Mode
	h := NewHandler(projectStub{}, transferStub{
		importFn: func(_ context.Context, data []byte, mode transfer.Mode) (*transfer.Report, error) {
			gotMode = mode
			return &transfer.Report{Imported: 1, Total: 1, Mode: mode}, nil
		},
	}, nil)

	result, err := h.Handle(context.Background(), "import_projects", json.RawMessage(`{"data":[{"id":"CRQ000123"}]}`))
	require.NoError(t, err)
	require.Equal(t, transfer.ModeAppend, gotMode)
	require.Equal(t, 1, result.(ImportResult).Report.Imported)
}

func TestHandleExportEmpty(t *testing.T) {
	h := NewHandler(projectStub{}, transferStub{
		exportFn: func(context.Context) (*transfer.Export, error) {
			return nil, project.ErrNoProjects
		},
	}, nil)

	_, err := h.Handle(context.Background(), "export_projects", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "NO_PROJECTS", apiErr.Code)
}

func TestHandleExtractFields(t *testing.T) {
	h := NewHandler(projectStub{}, nil, nil)

	params := json.RawMessage(`{"text":"CRQ: 12345\nRagione Sociale: Acme Srl\nVia Roma 10, 00100 Roma"}`)
	result, err := h.Handle(context.Background(), "extract_project_fields", params)
	require.NoError(t, err)

	fields := result.(ExtractResult).Fields
	require.Equal(t, "12345", fields.CRQ)
	require.Equal(t, "Acme Srl", fields.RagioneSociale)
	require.Equal(t, "Via Roma 10", fields.Via)
	require.Equal(t, "00100 Roma", fields.Citta)
}

func TestHandleRecentChangesFilter(t *testing.T) {
	var gotOpts changelog.ListOptions
	h := NewHandler(projectStub{}, nil, changeLogStub{
		recentFn: func(_ context.Context, opts changelog.ListOptions) ([]changelog.Entry, error) {
			gotOpts = opts
			return []changelog.Entry{{ID: "e1", ChangeType: changelog.TypeStatusChanged}}, nil
		},
	})

	result, err := h.Handle(context.Background(), "recent_changes", json.RawMessage(`{"project_id":"CRQ000123","type":"status_changed","limit":10}`))
	require.NoError(t, err)
	require.Equal(t, "CRQ000123", gotOpts.ProjectID)
	require.NotNil(t, gotOpts.Type)
	require.Equal(t, changelog.TypeStatusChanged, *gotOpts.Type)
	require.Equal(t, 10, gotOpts.Limit)
	require.Len(t, result.(RecentChangesResult).Entries, 1)
}

func TestHandleUnknownMethod(t *testing.T) {
	h := NewHandler(projectStub{}, nil, nil)

	_, err := h.Handle(context.Background(), "no_such_method", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown method")
}

func TestHandleDeleteProject(t *testing.T) {
	h := NewHandler(projectStub{
		deleteFn: func(_ context.Context, id string) error {
			require.Equal(t, "CRQ000123", id)
			return nil
		},
	}, nil, nil)

	result, err := h.Handle(context.Background(), "delete_project", json.RawMessage(`{"project_id":"CRQ000123"}`))
	require.NoError(t, err)
	require.True(t, result.(DeleteResult).Deleted)
}
