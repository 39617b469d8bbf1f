package runtime

import (
	"log/slog"

	"github.com/aretw0/quicktrace/internal/logging"
	"github.com/aretw0/quicktrace/pkg/domain"
)

// Engine runs the traced partition-exchange sort.
// It keeps no per-run state, so a single Engine may be shared and called
// concurrently.
type Engine struct {
	logger *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger used for debug output.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new trace engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sort sorts a copy of values in ascending order and returns the full step log.
// The caller's slice is never modified. Sort is total: any finite input,
// including an empty one, yields a report whose first step is the initial
// snapshot and whose last step is the single completed step.
func (e *Engine) Sort(values []int) *domain.SortReport {
	t := newTracer(values)

	t.start()
	t.solve()
	t.complete()

	e.logger.Debug("sort traced",
		"size", len(values),
		"steps", len(t.steps),
		"comparisons", t.comparisons,
		"swaps", t.swaps,
	)

	return &domain.SortReport{
		Steps:            t.steps,
		TotalComparisons: t.comparisons,
		TotalSwaps:       t.swaps,
		FinalArray:       domain.CopyInts(t.array),
	}
}
