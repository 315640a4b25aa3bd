package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emarinelli/crqtrack/internal/domain/changelog"
	"github.com/emarinelli/crqtrack/internal/domain/project"
	"github.com/emarinelli/crqtrack/internal/domain/transfer"
	"github.com/emarinelli/crqtrack/internal/mcp"
	"github.com/emarinelli/crqtrack/internal/sqlite"
	"github.com/emarinelli/crqtrack/internal/transport"
)

// TestServer wires the full stack against an in-memory database for
// HTTP-level tests.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Projects *project.Service
	Changes  *changelog.Service
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	store := sqlite.NewProjectStore(db)
	changeRepo := sqlite.NewChangeLogRepository(db)

	changeSvc := changelog.NewService(changeRepo, nil)
	projectSvc := project.NewService(store, changeSvc, nil)
	projectSvc.Load(context.Background())
	transferSvc := transfer.NewService(projectSvc, nil)

	handler := mcp.NewHandler(projectSvc, transferSvc, changeSvc)
	server := httptest.NewServer(transport.NewServer(handler))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Projects: projectSvc,
		Changes:  changeSvc,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}
