package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/quicktrace"
	"github.com/aretw0/quicktrace/internal/config"
	"github.com/aretw0/quicktrace/internal/logging"
	"github.com/aretw0/quicktrace/internal/metrics"
	"github.com/aretw0/quicktrace/pkg/adapters/file"
	"github.com/aretw0/quicktrace/pkg/adapters/memory"
	"github.com/aretw0/quicktrace/pkg/adapters/redis"
	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/aretw0/quicktrace/pkg/input"
	"github.com/aretw0/quicktrace/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Options carries the persistent flags shared by every command.
// Empty values fall back to the configuration file.
type Options struct {
	ConfigPath string
	LogLevel   string
	Store      string
	Dir        string
	// LogWriter receives log output. Defaults to Stderr.
	LogWriter io.Writer
}

// App is the wired application: configuration, logger, engine and metrics.
type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Engine    *quicktrace.Engine
	Metrics   *metrics.Collector
	Registry  *prometheus.Registry
	Parser    input.Parser
	Generator *input.Generator

	closers []func() error
}

// Bootstrap loads the configuration, applies flag overrides and builds the
// engine with standard CLI conventions.
func Bootstrap(opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Store != "" {
		cfg.Store.Backend = opts.Store
	}
	if opts.Dir != "" {
		cfg.Store.Dir = opts.Dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	w := opts.LogWriter
	if w == nil {
		w = os.Stderr
	}
	logger := logging.NewWithWriter(w, level)

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Registry:  prometheus.NewRegistry(),
		Parser:    input.Parser{MaxLength: cfg.Input.MaxLength},
		Generator: input.NewRandomGenerator(),
	}
	app.Metrics = metrics.New(app.Registry)

	store, err := app.createStore()
	if err != nil {
		return nil, err
	}

	engineOpts := []quicktrace.Option{
		quicktrace.WithLogger(logger),
		quicktrace.WithStore(store),
		quicktrace.WithLifecycleHooks(app.Metrics.Hooks()),
	}
	if level <= slog.LevelDebug {
		engineOpts = append(engineOpts, quicktrace.WithLifecycleHooks(createDebugHooks(logger)))
	}
	app.Engine = quicktrace.New(engineOpts...)

	return app, nil
}

// createStore builds the trace store selected by the configuration.
func (a *App) createStore() (ports.TraceStore, error) {
	cfg := a.Config.Store

	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil
	case config.BackendFile:
		a.Logger.Debug("Using file store", "dir", cfg.Dir)
		return file.New(cfg.Dir), nil
	case config.BackendRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis store unavailable at %s: %w", cfg.Redis.Addr, err)
		}
		a.closers = append(a.closers, store.Close)
		a.Logger.Debug("Using redis store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Close releases the store connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// InputSource describes where the array to sort comes from. The first
// non-empty source wins: Values, then Text, then a random array.
type InputSource struct {
	Values []string
	Text   string
	Count  int
	Min    int
	Max    int
}

// Resolve turns src into an array, counting and logging rejections.
func (a *App) Resolve(src InputSource) ([]int, error) {
	values, err := a.resolve(src)
	if err != nil {
		kind := input.Kind(err)
		a.Metrics.ObserveInvalidInput(kind)
		a.Logger.Warn("Input rejected", "err", err, "kind", kind)
		return nil, err
	}
	return values, nil
}

func (a *App) resolve(src InputSource) ([]int, error) {
	switch {
	case len(src.Values) > 0:
		return a.Parser.Parse(joinArgs(src.Values))
	case src.Text != "":
		return a.Parser.Parse(src.Text)
	default:
		if src.Count == 0 {
			src.Count = a.Config.Random.Count
		}
		if src.Count > a.Config.Input.MaxLength {
			return nil, fmt.Errorf("%w: %d entries, at most %d allowed", domain.ErrOversizeInput, src.Count, a.Config.Input.MaxLength)
		}
		return a.Generator.Generate(src.Count, src.Min, src.Max)
	}
}
