package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/quicktrace/pkg/adapters/http"
	"github.com/aretw0/quicktrace/pkg/adapters/mcp"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Handler builds the HTTP API for the app, with /metrics enabled.
func (a *App) Handler() http.Handler {
	return httpAdapter.NewHandler(a.Engine,
		httpAdapter.WithLogger(a.Logger),
		httpAdapter.WithParser(a.Parser),
		httpAdapter.WithGenerator(a.Generator),
		httpAdapter.WithRandomDefaults(a.Config.Random.Count, a.Config.Random.Min, a.Config.Random.Max),
		httpAdapter.WithMetrics(a.Registry),
		httpAdapter.WithInvalidInputObserver(a.Metrics.ObserveInvalidInput),
	)
}

// Serve runs the HTTP API on port until ctx is cancelled, then shuts down
// gracefully.
func (a *App) Serve(ctx context.Context, port string) error {
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr:              net.JoinHostPort("", port),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting QuickTrace Server", "addr", srv.Addr, "store", a.Config.Store.Backend)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		a.Logger.Info("Shutdown signal received, stopping server")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("Graceful shutdown did not complete", "err", err)
			return srv.Close()
		}
		a.Logger.Info("QuickTrace Server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP server on the given transport ("stdio" or "sse").
func (a *App) ServeMCP(ctx context.Context, transport string, port int) error {
	srv := mcp.NewServer(a.Engine,
		mcp.WithParser(a.Parser),
		mcp.WithGenerator(a.Generator),
		mcp.WithRandomDefaults(a.Config.Random.Count, a.Config.Random.Min, a.Config.Random.Max),
		mcp.WithLogger(a.Logger),
	)

	switch transport {
	case "stdio":
		a.Logger.Info("Starting QuickTrace MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		a.Logger.Info("Starting QuickTrace MCP Server (SSE)", "port", port)
		err := srv.ServeSSE(ctx, port)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", transport)
	}
}
