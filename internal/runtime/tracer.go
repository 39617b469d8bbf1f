package runtime

import "github.com/aretw0/quicktrace/pkg/domain"

// stage tracks where a frame is in the recursive schedule.
type stage int

const (
	stageEnter stage = iota // partition not yet run
	stageLeft               // partitioned, left subrange pending
	stageRight              // left subrange done, right subrange pending
)

// frame is one pending solve(low, high) call on the explicit work stack.
type frame struct {
	low, high int
	pivot     int
	stage     stage
}

// tracer owns the working array, the counters and the step log of one run.
type tracer struct {
	array       []int
	steps       []domain.Step
	comparisons int
	swaps       int
}

func newTracer(values []int) *tracer {
	return &tracer{array: domain.CopyInts(values)}
}

func (t *tracer) start() {
	// An empty array starts with the empty range [0, -1].
	t.record(domain.Step{
		Kind:        domain.StepStart,
		PivotIndex:  domain.NoIndex,
		Left:        0,
		Right:       len(t.array) - 1,
		Explanation: startMessage(t.array),
	})
}

func (t *tracer) complete() {
	t.record(domain.Step{
		Kind:        domain.StepCompleted,
		PivotIndex:  domain.NoIndex,
		Left:        domain.NoIndex,
		Right:       domain.NoIndex,
		Completed:   true,
		Explanation: completedMessage(t.array),
	})
}

// solve sorts the whole array. It walks the same schedule as the recursive
// definition (pivot, partition, left announcement, left, right announcement,
// right) using a stack of frames, so depth does not grow with the input.
func (t *tracer) solve() {
	stack := []frame{{low: 0, high: len(t.array) - 1}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		switch top.stage {
		case stageEnter:
			if top.low >= top.high {
				stack = stack[:len(stack)-1]
				continue
			}
			low, high := top.low, top.high

			t.record(domain.Step{
				Kind:        domain.StepPivot,
				PivotIndex:  high,
				Left:        low,
				Right:       high,
				Explanation: pivotMessage(low, high, t.array[high]),
			})

			p := t.partition(low, high)

			t.record(domain.Step{
				Kind:        domain.StepPartitioned,
				PivotIndex:  p,
				Left:        low,
				Right:       high,
				Partitioned: true,
				Explanation: partitionedMessage(t.array[p], p),
			})

			if p-1 > low {
				t.record(domain.Step{
					Kind:        domain.StepDescendLeft,
					PivotIndex:  domain.NoIndex,
					Left:        low,
					Right:       p - 1,
					Explanation: descendLeftMessage(low, p-1),
				})
			}

			top.pivot = p
			top.stage = stageLeft
			stack = append(stack, frame{low: low, high: p - 1})

		case stageLeft:
			high, p := top.high, top.pivot

			if p+1 < high {
				t.record(domain.Step{
					Kind:        domain.StepDescendRight,
					PivotIndex:  domain.NoIndex,
					Left:        p + 1,
					Right:       high,
					Explanation: descendRightMessage(p+1, high),
				})
			}

			top.stage = stageRight
			stack = append(stack, frame{low: p + 1, high: high})

		case stageRight:
			stack = stack[:len(stack)-1]
		}
	}
}

// partition runs a Lomuto partition of [low, high] around array[high] and
// returns the pivot's final index.
func (t *tracer) partition(low, high int) int {
	pivot := t.array[high]
	i := low - 1

	for j := low; j < high; j++ {
		t.comparisons++
		t.record(domain.Step{
			Kind:        domain.StepCompare,
			PivotIndex:  high,
			Left:        low,
			Right:       high,
			Comparing:   []int{j, high},
			Explanation: compareMessage(t.array[j], pivot),
		})

		if t.array[j] > pivot {
			continue
		}

		i++
		if i == j {
			t.record(domain.Step{
				Kind:        domain.StepNoSwap,
				PivotIndex:  high,
				Left:        low,
				Right:       high,
				Explanation: noSwapMessage(t.array[j], pivot),
			})
			continue
		}

		t.record(domain.Step{
			Kind:        domain.StepSwap,
			PivotIndex:  high,
			Left:        low,
			Right:       high,
			Swapping:    []int{i, j},
			Explanation: swapMessage(t.array[j], pivot, t.array[i]),
		})

		t.exchange(i, j)

		t.record(domain.Step{
			Kind:        domain.StepSwapped,
			PivotIndex:  high,
			Left:        low,
			Right:       high,
			Explanation: swappedMessage(t.array[i], t.array[j]),
		})
	}

	// Pivot already in place: no announcement and no exchange.
	if i+1 != high {
		t.record(domain.Step{
			Kind:        domain.StepPlacePivot,
			PivotIndex:  high,
			Left:        low,
			Right:       high,
			Swapping:    []int{i + 1, high},
			Explanation: placePivotMessage(pivot, i+1),
		})
		t.exchange(i+1, high)
	}

	return i + 1
}

func (t *tracer) exchange(a, b int) {
	t.array[a], t.array[b] = t.array[b], t.array[a]
	t.swaps++
}

// record snapshots the working array and the current counters into s and
// appends it to the log.
func (t *tracer) record(s domain.Step) {
	s.Array = domain.CopyInts(t.array)
	s.Comparing = domain.CopyInts(s.Comparing)
	s.Swapping = domain.CopyInts(s.Swapping)
	s.Comparisons = t.comparisons
	s.Swaps = t.swaps
	t.steps = append(t.steps, s)
}
