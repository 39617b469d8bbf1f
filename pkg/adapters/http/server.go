package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/quicktrace"
	"github.com/aretw0/quicktrace/internal/presentation/graph"
	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/aretw0/quicktrace/pkg/input"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines the subset of the QuickTrace engine served over HTTP.
type Engine interface {
	Record(ctx context.Context, values []int) (*domain.Trace, error)
	Trace(ctx context.Context, id string) (*domain.Trace, error)
	Traces(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// SortRequest is the body of POST /sort. Exactly one source is used, in
// order of precedence: Values, Input, Random.
type SortRequest struct {
	Values []int  `json:"values,omitempty"`
	Input  string `json:"input,omitempty"`
	Random bool   `json:"random,omitempty"`
	Count  int    `json:"count,omitempty"`
}

// Server implements ServerInterface on top of an Engine.
type Server struct {
	Engine    Engine
	Parser    input.Parser
	Generator *input.Generator
	Logger    *slog.Logger

	gatherer       prometheus.Gatherer
	onInvalidInput func(kind string)
	randomCount    int
	randomMin      int
	randomMax      int
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithParser sets the parser used for textual input.
func WithParser(p input.Parser) Option {
	return func(s *Server) {
		s.Parser = p
	}
}

// WithGenerator sets the source of random arrays.
func WithGenerator(g *input.Generator) Option {
	return func(s *Server) {
		s.Generator = g
	}
}

// WithRandomDefaults sets the length and value bounds of random arrays.
// A request count overrides count.
func WithRandomDefaults(count, min, max int) Option {
	return func(s *Server) {
		s.randomCount = count
		s.randomMin = min
		s.randomMax = max
	}
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithInvalidInputObserver is called with the rejection kind of every
// invalid sort request.
func WithInvalidInputObserver(fn func(kind string)) Option {
	return func(s *Server) {
		s.onInvalidInput = fn
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine:    engine,
		Generator: input.NewRandomGenerator(),
		Logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),

		randomCount: input.DefaultCount,
		randomMin:   input.DefaultMin,
		randomMax:   input.DefaultMax,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	if server.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}

	handler := HandlerFromMux(server, r, server.badParam)
	return enableCORS(handler)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "quicktrace-http",
		"version": strings.TrimSpace(quicktrace.Version),
	})
}

// CreateSort handles the POST /sort request.
func (s *Server) CreateSort(w http.ResponseWriter, r *http.Request) {
	var body SortRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.Logger.Warn("CreateSort: Invalid request body", "err", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	values, err := s.resolve(body)
	if err != nil {
		kind := input.Kind(err)
		if s.onInvalidInput != nil {
			s.onInvalidInput(kind)
		}
		s.Logger.Warn("CreateSort: Input rejected", "err", err, "kind", kind)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trace, err := s.Engine.Record(r.Context(), values)
	if err != nil {
		s.Logger.Error("CreateSort: Record failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.Logger.Info("CreateSort: Trace recorded", "trace_id", trace.ID, "steps", len(trace.Report.Steps))
	writeJSON(w, http.StatusCreated, trace)
}

// ListTraces handles the GET /traces request.
func (s *Server) ListTraces(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.Traces(r.Context())
	if err != nil {
		s.Logger.Error("ListTraces failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetTrace handles the GET /traces/{id} request.
func (s *Server) GetTrace(w http.ResponseWriter, r *http.Request, id string) {
	trace, ok := s.load(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trace)
}

// DeleteTrace handles the DELETE /traces/{id} request.
func (s *Server) DeleteTrace(w http.ResponseWriter, r *http.Request, id string) {
	err := s.Engine.Delete(r.Context(), id)
	if errors.Is(err, domain.ErrInvalidTraceID) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.Logger.Error("DeleteTrace failed", "err", err, "trace_id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStep handles the GET /traces/{id}/steps/{index} request.
func (s *Server) GetStep(w http.ResponseWriter, r *http.Request, id string, index int) {
	trace, ok := s.load(w, r, id)
	if !ok {
		return
	}
	if index < 0 || index >= len(trace.Report.Steps) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("step %d out of range [0, %d)", index, len(trace.Report.Steps)))
		return
	}
	writeJSON(w, http.StatusOK, trace.Report.Steps[index])
}

// GetGraph handles the GET /traces/{id}/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request, id string) {
	trace, ok := s.load(w, r, id)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, graph.GenerateMermaid(&trace.Report, nil))
}

func (s *Server) load(w http.ResponseWriter, r *http.Request, id string) (*domain.Trace, bool) {
	trace, err := s.Engine.Trace(r.Context(), id)
	if errors.Is(err, domain.ErrTraceNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	if errors.Is(err, domain.ErrInvalidTraceID) {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if err != nil {
		s.Logger.Error("Trace lookup failed", "err", err, "trace_id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return trace, true
}

func (s *Server) resolve(body SortRequest) ([]int, error) {
	limit := s.Parser.MaxLength
	if limit <= 0 {
		limit = input.DefaultMaxLength
	}

	switch {
	case body.Values != nil:
		if len(body.Values) == 0 {
			return nil, domain.ErrEmptyInput
		}
		if len(body.Values) > limit {
			return nil, fmt.Errorf("%w: %d entries, at most %d allowed", domain.ErrOversizeInput, len(body.Values), limit)
		}
		return body.Values, nil
	case body.Input != "":
		return s.Parser.Parse(body.Input)
	case body.Random:
		count := body.Count
		if count <= 0 {
			count = s.randomCount
		}
		if count > limit {
			return nil, fmt.Errorf("%w: %d entries, at most %d allowed", domain.ErrOversizeInput, count, limit)
		}
		return s.Generator.Generate(count, s.randomMin, s.randomMax)
	default:
		return nil, domain.ErrEmptyInput
	}
}

func (s *Server) badParam(w http.ResponseWriter, r *http.Request, err error) {
	s.Logger.Warn("Invalid path parameter", "err", err, "path", r.URL.Path)
	writeError(w, http.StatusBadRequest, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
