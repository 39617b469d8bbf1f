package replay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/quicktrace/pkg/domain"
)

// DefaultSpeed is the autoplay interval between steps.
const DefaultSpeed = 800 * time.Millisecond

// ErrStepOutOfRange is returned when seeking outside the step log.
var ErrStepOutOfRange = errors.New("step out of range")

// Player is a cursor over a recorded step log.
// It only reads the log; stepping never re-runs the sort.
// Safe for concurrent use.
type Player struct {
	mu    sync.RWMutex
	steps []domain.Step
	index int
	speed time.Duration
}

// Option configures a Player.
type Option func(*Player)

// WithSpeed sets the autoplay interval.
func WithSpeed(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.speed = d
		}
	}
}

// NewPlayer creates a player positioned on the first step of report.
func NewPlayer(report *domain.SortReport, opts ...Option) *Player {
	p := &Player{speed: DefaultSpeed}
	if report != nil {
		p.steps = report.Steps
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Len returns the number of steps.
func (p *Player) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.steps)
}

// Index returns the position of the cursor.
func (p *Player) Index() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index
}

// Current returns a copy of the step under the cursor.
// It returns false when the log is empty.
func (p *Player) Current() (domain.Step, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stepLocked(p.index)
}

// Step returns a copy of the step at index without moving the cursor.
func (p *Player) Step(index int) (domain.Step, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	step, ok := p.stepLocked(index)
	if !ok {
		return domain.Step{}, fmt.Errorf("%w: %d not in [0, %d)", ErrStepOutOfRange, index, len(p.steps))
	}
	return step, nil
}

// Next moves forward one step. It returns false at the last step.
func (p *Player) Next() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.index >= len(p.steps)-1 {
		return false
	}
	p.index++
	return true
}

// Prev moves back one step. It returns false at the first step.
func (p *Player) Prev() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.index <= 0 {
		return false
	}
	p.index--
	return true
}

// Reset moves the cursor to the first step.
func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index = 0
}

// Seek moves the cursor to index.
func (p *Player) Seek(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.steps) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrStepOutOfRange, index, len(p.steps))
	}
	p.index = index
	return nil
}

// AtEnd reports whether the cursor is on the last step.
func (p *Player) AtEnd() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index >= len(p.steps)-1
}

// Speed returns the autoplay interval.
func (p *Player) Speed() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.speed
}

// SetSpeed changes the autoplay interval. Non-positive values are ignored.
// A running Play picks the new value up on its next tick.
func (p *Player) SetSpeed(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = d
}

// Play advances one step per tick, calling fn after each move, until the last
// step is reached (returns nil) or ctx is done (returns ctx.Err()).
// fn may be nil.
func (p *Player) Play(ctx context.Context, fn func(index int, step domain.Step)) error {
	speed := p.Speed()
	ticker := time.NewTicker(speed)
	defer ticker.Stop()

	for {
		if p.AtEnd() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if !p.Next() {
			return nil
		}
		if fn != nil {
			p.mu.RLock()
			index := p.index
			step, _ := p.stepLocked(index)
			p.mu.RUnlock()
			fn(index, step)
		}

		if current := p.Speed(); current != speed {
			speed = current
			ticker.Reset(speed)
		}
	}
}

func (p *Player) stepLocked(index int) (domain.Step, bool) {
	if index < 0 || index >= len(p.steps) {
		return domain.Step{}, false
	}
	return p.steps[index].Clone(), true
}
