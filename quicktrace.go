package quicktrace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/quicktrace/internal/runtime"
	"github.com/aretw0/quicktrace/pkg/adapters/memory"
	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/aretw0/quicktrace/pkg/ports"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the QuickTrace library.
// It wraps the trace engine with observability hooks and persistence.
type Engine struct {
	runtime *runtime.Engine
	store   ports.TraceStore
	hooks   []domain.LifecycleHooks
	logger  *slog.Logger
	newID   func() string
	now     func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. It may be given more than
// once; hooks run in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks)
	}
}

// WithStore sets the trace store used by Record and the lookup methods.
func WithStore(store ports.TraceStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithIDGenerator replaces the UUID generator used for new traces.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// WithClock replaces the time source used to stamp traces.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New initializes a new Engine. Without WithStore, traces are kept in memory.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.newID == nil {
		eng.newID = uuid.NewString
	}
	if eng.now == nil {
		eng.now = time.Now
	}

	eng.runtime = runtime.NewEngine(runtime.WithLogger(eng.logger))
	return eng
}

// Sort runs the traced sort over a copy of values and returns its report.
// Lifecycle hooks observe the run after the report is complete, step by step
// in log order; the sort itself never waits on them.
func (e *Engine) Sort(ctx context.Context, values []int) *domain.SortReport {
	e.dispatchStart(ctx, values)

	report := e.runtime.Sort(values)

	e.dispatchSteps(ctx, report)
	e.dispatchComplete(ctx, values, report)
	return report
}

// Record sorts values and persists the result as a new Trace.
func (e *Engine) Record(ctx context.Context, values []int) (*domain.Trace, error) {
	report := e.Sort(ctx, values)
	trace := domain.NewTrace(e.newID(), e.now().UTC(), values, report)

	if err := e.store.Save(ctx, trace); err != nil {
		return nil, fmt.Errorf("failed to save trace: %w", err)
	}
	e.logger.Info("trace recorded", "trace_id", trace.ID, "size", len(values), "steps", len(report.Steps))
	return trace, nil
}

// Trace loads a stored trace.
func (e *Engine) Trace(ctx context.Context, id string) (*domain.Trace, error) {
	return e.store.Load(ctx, id)
}

// Traces lists stored trace IDs.
func (e *Engine) Traces(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// Delete removes a stored trace.
func (e *Engine) Delete(ctx context.Context, id string) error {
	return e.store.Delete(ctx, id)
}

// Store returns the underlying TraceStore.
func (e *Engine) Store() ports.TraceStore {
	return e.store
}

func (e *Engine) dispatchStart(ctx context.Context, values []int) {
	var event *domain.SortEvent
	for _, h := range e.hooks {
		if h.OnSortStart == nil {
			continue
		}
		if event == nil {
			event = &domain.SortEvent{
				EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventSortStart},
				Input:     domain.CopyInts(values),
			}
		}
		h.OnSortStart(ctx, event)
	}
}

func (e *Engine) dispatchSteps(ctx context.Context, report *domain.SortReport) {
	observers := make([]func(context.Context, *domain.StepEvent), 0, len(e.hooks))
	for _, h := range e.hooks {
		if h.OnStep != nil {
			observers = append(observers, h.OnStep)
		}
	}
	if len(observers) == 0 {
		return
	}

	for i, step := range report.Steps {
		event := &domain.StepEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventStep},
			Index:     i,
			Step:      step.Clone(),
		}
		for _, fn := range observers {
			fn(ctx, event)
		}
	}
}

func (e *Engine) dispatchComplete(ctx context.Context, values []int, report *domain.SortReport) {
	for _, h := range e.hooks {
		if h.OnSortComplete == nil {
			continue
		}
		h.OnSortComplete(ctx, &domain.SortEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventSortComplete},
			Input:     domain.CopyInts(values),
			Report:    report,
		})
	}
}
