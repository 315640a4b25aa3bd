package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/emarinelli/crqtrack/internal/mcp"
)

// MCPHandler handles tool method dispatch.
type MCPHandler interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// Server wires HTTP handlers.
type Server struct {
	handler MCPHandler
}

// NewServer creates an HTTP router exposing the JSON-RPC endpoint and a
// health check. The tracker is single-user and local, there is no auth.
func NewServer(handler MCPHandler) *chi.Mux {
	r := chi.NewRouter()

	srv := &Server{handler: handler}

	r.Post("/mcp", srv.handleMCP)
	r.Get("/health", srv.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		WriteError(w, nil, ErrInvalidReq, "invalid request", nil)
		return
	}

	result, err := s.handler.Handle(r.Context(), req.Method, req.Params)
	if err != nil {
		WriteError(w, req.ID, errorCode(err), err.Error(), errorData(err))
		return
	}

	WriteResult(w, req.ID, result)
}

func errorCode(err error) int {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "unknown method"):
		return ErrMethodNotFound
	case strings.HasPrefix(msg, "invalid params"):
		return ErrInvalidParams
	default:
		return ErrInternal
	}
}

// errorData exposes the structured API error, when there is one, so
// clients can branch on the code instead of parsing messages.
func errorData(err error) any {
	var apiErr *mcp.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
