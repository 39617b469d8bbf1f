package metrics

import (
	"context"

	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes trace engine activity as Prometheus metrics.
type Collector struct {
	sorts         prometheus.Counter
	steps         prometheus.Histogram
	stepKinds     *prometheus.CounterVec
	comparisons   prometheus.Counter
	swaps         prometheus.Counter
	inputSize     prometheus.Histogram
	invalidInputs *prometheus.CounterVec
}

// New creates a Collector and registers it with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sorts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quicktrace_sorts_total",
			Help: "Total number of traced sort runs",
		}),
		steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quicktrace_steps_per_sort",
			Help:    "Number of steps recorded per sort run",
			Buckets: prometheus.ExponentialBuckets(2, 2, 10),
		}),
		stepKinds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quicktrace_steps_total",
				Help: "Total number of recorded steps by kind",
			},
			[]string{"kind"},
		),
		comparisons: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quicktrace_comparisons_total",
			Help: "Total number of element comparisons",
		}),
		swaps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quicktrace_swaps_total",
			Help: "Total number of element exchanges",
		}),
		inputSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quicktrace_input_size",
			Help:    "Length of the arrays submitted for sorting",
			Buckets: prometheus.LinearBuckets(0, 4, 6),
		}),
		invalidInputs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quicktrace_invalid_inputs_total",
				Help: "Total number of rejected inputs by kind",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(c.sorts, c.steps, c.stepKinds, c.comparisons, c.swaps, c.inputSize, c.invalidInputs)
	return c
}

// Hooks returns lifecycle hooks feeding the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSortStart: func(ctx context.Context, e *domain.SortEvent) {
			c.inputSize.Observe(float64(len(e.Input)))
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			c.stepKinds.WithLabelValues(string(e.Step.Kind)).Inc()
		},
		OnSortComplete: func(ctx context.Context, e *domain.SortEvent) {
			c.sorts.Inc()
			if e.Report == nil {
				return
			}
			c.steps.Observe(float64(len(e.Report.Steps)))
			c.comparisons.Add(float64(e.Report.TotalComparisons))
			c.swaps.Add(float64(e.Report.TotalSwaps))
		},
	}
}

// ObserveInvalidInput counts an input rejection of the given kind.
func (c *Collector) ObserveInvalidInput(kind string) {
	if kind == "" {
		kind = "invalid"
	}
	c.invalidInputs.WithLabelValues(kind).Inc()
}
