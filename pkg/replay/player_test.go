package replay_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/quicktrace/internal/runtime"
	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/aretw0/quicktrace/pkg/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayer(t *testing.T, opts ...replay.Option) (*replay.Player, *domain.SortReport) {
	t.Helper()
	report := runtime.NewEngine().Sort([]int{5, 2, 8})
	return replay.NewPlayer(report, opts...), report
}

func TestPlayer_Navigation(t *testing.T) {
	p, report := newPlayer(t)

	assert.Equal(t, len(report.Steps), p.Len())
	assert.Equal(t, 0, p.Index())
	assert.False(t, p.Prev(), "no step before the first")

	current, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, domain.StepStart, current.Kind)

	require.True(t, p.Next())
	assert.Equal(t, 1, p.Index())
	require.True(t, p.Prev())
	assert.Equal(t, 0, p.Index())

	require.NoError(t, p.Seek(p.Len()-1))
	assert.True(t, p.AtEnd())
	assert.False(t, p.Next(), "no wrap past the end")
	current, _ = p.Current()
	assert.True(t, current.Completed)

	p.Reset()
	assert.Equal(t, 0, p.Index())

	assert.ErrorIs(t, p.Seek(-1), replay.ErrStepOutOfRange)
	assert.ErrorIs(t, p.Seek(p.Len()), replay.ErrStepOutOfRange)
	_, err := p.Step(p.Len())
	assert.ErrorIs(t, err, replay.ErrStepOutOfRange)
}

func TestPlayer_ReadOnly(t *testing.T) {
	p, report := newPlayer(t)

	step, ok := p.Current()
	require.True(t, ok)
	step.Array[0] = 1000

	assert.Equal(t, 5, report.Steps[0].Array[0])
	again, _ := p.Current()
	assert.Equal(t, 5, again.Array[0])
}

func TestPlayer_Empty(t *testing.T) {
	p := replay.NewPlayer(nil)
	assert.Equal(t, 0, p.Len())
	_, ok := p.Current()
	assert.False(t, ok)
	assert.True(t, p.AtEnd())
	assert.NoError(t, p.Play(context.Background(), nil))
}

func TestPlayer_PlayRunsToEnd(t *testing.T) {
	p, report := newPlayer(t, replay.WithSpeed(time.Millisecond))

	var seen []int
	err := p.Play(context.Background(), func(index int, step domain.Step) {
		seen = append(seen, index)
		assert.Equal(t, report.Steps[index].Kind, step.Kind)
	})
	require.NoError(t, err)

	assert.True(t, p.AtEnd())
	require.Len(t, seen, len(report.Steps)-1)
	assert.Equal(t, 1, seen[0])
	assert.Equal(t, len(report.Steps)-1, seen[len(seen)-1])
}

func TestPlayer_PlayCancel(t *testing.T) {
	p, _ := newPlayer(t, replay.WithSpeed(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Play(ctx, nil) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Play did not stop after cancellation")
	}
	assert.Equal(t, 0, p.Index())
}

func TestPlayer_Speed(t *testing.T) {
	p, _ := newPlayer(t)
	assert.Equal(t, replay.DefaultSpeed, p.Speed())

	p.SetSpeed(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, p.Speed())

	p.SetSpeed(0)
	assert.Equal(t, 100*time.Millisecond, p.Speed())
}
