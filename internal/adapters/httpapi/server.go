// Package httpapi exposes the engine over HTTP: document evaluation,
// single-operation calls, the operation catalog and Prometheus metrics.
package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/atomgraph/webalgebra"
	"github.com/atomgraph/webalgebra/pkg/algebra"
	"github.com/atomgraph/webalgebra/pkg/observability"
)

// Server handles the HTTP API routes.
type Server struct {
	engine *webalgebra.Engine
	log    *slog.Logger
}

// NewHandler creates the HTTP handler for the engine. The metrics handler
// is mounted under /metrics when a Prometheus backend is supplied.
func NewHandler(engine *webalgebra.Engine, log *slog.Logger, metrics *observability.Prometheus) http.Handler {
	s := &Server{engine: engine, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/operations", s.listOperations)
	r.Post("/operations/{name}", s.callOperation)
	r.Post("/evaluate", s.evaluate)
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler())
	}
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": webalgebra.Version})
}

func (s *Server) listOperations(w http.ResponseWriter, r *http.Request) {
	type opInfo struct {
		Name   string         `json:"name"`
		Doc    string         `json:"description"`
		Schema map[string]any `json:"inputSchema"`
	}
	infos := []opInfo{}
	for _, desc := range s.engine.Operations() {
		infos = append(infos, opInfo{Name: desc.Name, Doc: desc.Doc, Schema: desc.InputSchema()})
	}
	writeJSON(w, http.StatusOK, infos)
}

// callOperation handles POST /operations/{name}: the request body is the
// plain JSON arguments mapping.
func (s *Server) callOperation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	args := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	out, err := s.engine.Call(r.Context(), name, args)
	if err != nil {
		s.log.Warn("operation call failed", "op", name, "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": out})
}

// evaluate handles POST /evaluate: the request body is a whole workflow
// document.
func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := s.engine.EvaluateDocument(r.Context(), data)
	if err != nil {
		s.log.Warn("evaluation failed", "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": out})
}

// statusFor maps the evaluation error taxonomy onto HTTP status codes:
// caller mistakes are 4xx, everything else is a 502 since the failure
// usually originates from an upstream server.
func statusFor(err error) int {
	switch {
	case algebra.IsUnknownOperation(err):
		return http.StatusNotFound
	case algebra.IsTypeMismatch(err), algebra.IsMissingBinding(err):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
