package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/quicktrace/pkg/domain"
)

// Store implements ports.TraceStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Trace
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Trace),
	}
}

// Save persists a deep copy of the trace.
func (s *Store) Save(ctx context.Context, trace *domain.Trace) error {
	copied := cloneTrace(trace)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[trace.ID] = copied
	return nil
}

// Load returns a copy so callers can't mutate the stored trace.
func (s *Store) Load(ctx context.Context, id string) (*domain.Trace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trace, ok := s.data[id]
	if !ok {
		return nil, domain.ErrTraceNotFound
	}
	return cloneTrace(trace), nil
}

// Delete removes the trace.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored IDs, oldest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := s.data[ids[i]], s.data[ids[j]]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return ids[i] < ids[j]
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return ids, nil
}

func cloneTrace(t *domain.Trace) *domain.Trace {
	c := *t
	c.Input = domain.CopyInts(t.Input)
	c.Report.FinalArray = domain.CopyInts(t.Report.FinalArray)
	c.Report.Steps = make([]domain.Step, len(t.Report.Steps))
	for i, step := range t.Report.Steps {
		c.Report.Steps[i] = step.Clone()
	}
	return &c
}
