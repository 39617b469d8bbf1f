package testutils

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/quicktrace"
)

// SequentialIDs returns an ID generator yielding "trace-1", "trace-2", ...
func SequentialIDs() func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("trace-%d", n)
	}
}

// FixedClock returns a clock that advances one second per call, starting at
// 2024-01-01 UTC, so stored traces have a stable order.
func FixedClock() func() time.Time {
	var (
		mu  sync.Mutex
		now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

// NewEngine creates an engine on the in-memory store with deterministic IDs
// and timestamps. Extra options are applied last.
func NewEngine(t *testing.T, opts ...quicktrace.Option) *quicktrace.Engine {
	t.Helper()
	base := []quicktrace.Option{
		quicktrace.WithIDGenerator(SequentialIDs()),
		quicktrace.WithClock(FixedClock()),
	}
	return quicktrace.New(append(base, opts...)...)
}
