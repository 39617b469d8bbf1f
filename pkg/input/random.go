package input

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/aretw0/quicktrace/pkg/domain"
)

// Defaults used by the visualizer when generating a random array.
const (
	DefaultCount = 8
	DefaultMin   = 5
	DefaultMax   = 99
)

// Generator produces random arrays. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a deterministic generator from seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomGenerator creates a generator seeded from the runtime's entropy.
func NewRandomGenerator() *Generator {
	return NewGenerator(rand.Uint64())
}

// Generate returns count integers drawn uniformly from [min, max].
// A zero count is rejected as empty input; a negative count or an inverted
// range is rejected as invalid input.
func (g *Generator) Generate(count, min, max int) ([]int, error) {
	if count == 0 {
		return nil, domain.ErrEmptyInput
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative, got %d", domain.ErrInvalidInput, count)
	}
	if min > max {
		return nil, fmt.Errorf("%w: min (%d) exceeds max (%d)", domain.ErrInvalidInput, min, max)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Computed in uint64 so [MinInt, MaxInt] does not overflow. A span that
	// wraps to zero covers every int.
	span := uint64(max) - uint64(min) + 1
	values := make([]int, count)
	for i := range values {
		var offset uint64
		if span == 0 {
			offset = g.rng.Uint64()
		} else {
			offset = g.rng.Uint64N(span)
		}
		values[i] = min + int(offset)
	}
	return values, nil
}

// GenerateDefault returns DefaultCount values in [DefaultMin, DefaultMax].
func (g *Generator) GenerateDefault() []int {
	values, _ := g.Generate(DefaultCount, DefaultMin, DefaultMax)
	return values
}
