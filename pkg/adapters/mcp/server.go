package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/quicktrace"
	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/aretw0/quicktrace/pkg/input"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TracesURI lists the stored trace IDs.
const TracesURI = "quicktrace://traces"

// Engine defines the interface required by the MCP server.
type Engine interface {
	Record(ctx context.Context, values []int) (*domain.Trace, error)
	Trace(ctx context.Context, id string) (*domain.Trace, error)
	Traces(ctx context.Context) ([]string, error)
}

// SortResponse is the structured result of sort_array.
type SortResponse struct {
	TraceID          string `json:"trace_id" jsonschema_description:"Identifier of the recorded trace"`
	Input            []int  `json:"input" jsonschema_description:"The array that was sorted"`
	FinalArray       []int  `json:"final_array" jsonschema_description:"The sorted array"`
	Steps            int    `json:"steps" jsonschema_description:"Number of recorded steps"`
	TotalComparisons int    `json:"total_comparisons" jsonschema_description:"Comparisons performed"`
	TotalSwaps       int    `json:"total_swaps" jsonschema_description:"Swaps performed"`
}

// StepResponse is the structured result of get_step.
type StepResponse struct {
	TraceID string      `json:"trace_id" jsonschema_description:"Identifier of the trace"`
	Index   int         `json:"index" jsonschema_description:"Zero-based step index"`
	Total   int         `json:"total" jsonschema_description:"Number of steps in the trace"`
	Step    domain.Step `json:"step" jsonschema_description:"The recorded snapshot"`
}

type sortArgs struct {
	Input  string `json:"input"`
	Random bool   `json:"random"`
	Count  int    `json:"count"`
}

type traceArgs struct {
	TraceID string `json:"trace_id"`
}

type stepArgs struct {
	TraceID string `json:"trace_id"`
	Index   int    `json:"index"`
}

// Server wraps the QuickTrace Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	parser    input.Parser
	generator *input.Generator
	logger    *slog.Logger
	mcpServer *server.MCPServer

	randomCount int
	randomMin   int
	randomMax   int
}

// Option configures the Server.
type Option func(*Server)

// WithParser sets the parser used by sort_array.
func WithParser(p input.Parser) Option {
	return func(s *Server) {
		s.parser = p
	}
}

// WithGenerator sets the source of random arrays.
func WithGenerator(g *input.Generator) Option {
	return func(s *Server) {
		s.generator = g
	}
}

// WithRandomDefaults sets the length and value bounds used by sort_array
// when it generates a random array. A tool count overrides count.
func WithRandomDefaults(count, min, max int) Option {
	return func(s *Server) {
		s.randomCount = count
		s.randomMin = min
		s.randomMax = max
	}
}

// WithLogger sets the server logger. Stdout carries the protocol, so the
// logger must write elsewhere.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		generator: input.NewRandomGenerator(),
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("quicktrace-mcp", strings.TrimSpace(quicktrace.Version)),

		randomCount: input.DefaultCount,
		randomMin:   input.DefaultMin,
		randomMax:   input.DefaultMax,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and blocks until
// ctx is cancelled or the listener fails.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: sort_array
	sortTool := mcp.NewTool("sort_array",
		mcp.WithDescription("Sort an array with a traced quicksort and record the trace. Give either a comma-separated list or random=true."),
		mcp.WithString("input", mcp.Description("Comma-separated integers, e.g. \"5, 2, 8\" (at most 20 entries)")),
		mcp.WithBoolean("random", mcp.Description("Generate a random array instead of parsing input")),
		mcp.WithNumber("count", mcp.Description("Length of the random array (default 8)")),
		mcp.WithOutputSchema[SortResponse](),
	)
	s.mcpServer.AddTool(sortTool, mcp.NewStructuredToolHandler(s.handleSortArray))

	// TOOL: get_trace
	traceTool := mcp.NewTool("get_trace",
		mcp.WithDescription("Get a recorded trace with every step."),
		mcp.WithString("trace_id", mcp.Required(), mcp.Description("Trace identifier returned by sort_array")),
		mcp.WithOutputSchema[domain.Trace](),
	)
	s.mcpServer.AddTool(traceTool, mcp.NewStructuredToolHandler(s.handleGetTrace))

	// TOOL: get_step
	stepTool := mcp.NewTool("get_step",
		mcp.WithDescription("Get a single step of a recorded trace."),
		mcp.WithString("trace_id", mcp.Required(), mcp.Description("Trace identifier")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based step index")),
		mcp.WithOutputSchema[StepResponse](),
	)
	s.mcpServer.AddTool(stepTool, mcp.NewStructuredToolHandler(s.handleGetStep))
}

func (s *Server) handleSortArray(ctx context.Context, request mcp.CallToolRequest, args sortArgs) (SortResponse, error) {
	values, err := s.resolve(args)
	if err != nil {
		s.logger.Warn("MCP sort_array: Input rejected", "err", err, "kind", input.Kind(err))
		return SortResponse{}, err
	}

	trace, err := s.engine.Record(ctx, values)
	if err != nil {
		return SortResponse{}, fmt.Errorf("record failed: %w", err)
	}

	return SortResponse{
		TraceID:          trace.ID,
		Input:            trace.Input,
		FinalArray:       trace.Report.FinalArray,
		Steps:            len(trace.Report.Steps),
		TotalComparisons: trace.Report.TotalComparisons,
		TotalSwaps:       trace.Report.TotalSwaps,
	}, nil
}

func (s *Server) handleGetTrace(ctx context.Context, request mcp.CallToolRequest, args traceArgs) (domain.Trace, error) {
	trace, err := s.engine.Trace(ctx, args.TraceID)
	if err != nil {
		return domain.Trace{}, fmt.Errorf("get trace %q: %w", args.TraceID, err)
	}
	return *trace, nil
}

func (s *Server) handleGetStep(ctx context.Context, request mcp.CallToolRequest, args stepArgs) (StepResponse, error) {
	trace, err := s.engine.Trace(ctx, args.TraceID)
	if err != nil {
		return StepResponse{}, fmt.Errorf("get trace %q: %w", args.TraceID, err)
	}

	total := len(trace.Report.Steps)
	if args.Index < 0 || args.Index >= total {
		return StepResponse{}, fmt.Errorf("step %d out of range [0, %d)", args.Index, total)
	}

	return StepResponse{
		TraceID: trace.ID,
		Index:   args.Index,
		Total:   total,
		Step:    trace.Report.Steps[args.Index],
	}, nil
}

func (s *Server) resolve(args sortArgs) ([]int, error) {
	if !args.Random {
		return s.parser.Parse(args.Input)
	}

	limit := s.parser.MaxLength
	if limit <= 0 {
		limit = input.DefaultMaxLength
	}
	count := args.Count
	if count <= 0 {
		count = s.randomCount
	}
	if count > limit {
		return nil, fmt.Errorf("%w: %d entries, at most %d allowed", domain.ErrOversizeInput, count, limit)
	}
	return s.generator.Generate(count, s.randomMin, s.randomMax)
}

func (s *Server) registerResources() {
	// EXPOSE: quicktrace://traces
	s.mcpServer.AddResource(mcp.NewResource(TracesURI, "Recorded Traces",
		mcp.WithMIMEType("application/json"),
	), s.readTraces)
}

func (s *Server) readTraces(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.engine.Traces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list traces: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	jsonBytes, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trace list: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TracesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
