package domain

// StepKind identifies which event of the algorithm produced a Step.
type StepKind string

const (
	StepStart        StepKind = "start"         // Initial snapshot before any work
	StepPivot        StepKind = "pivot"         // A subrange is entered and its pivot chosen
	StepCompare      StepKind = "compare"       // An element is compared against the pivot
	StepSwap         StepKind = "swap"          // Two elements are about to be exchanged
	StepSwapped      StepKind = "swapped"       // Two elements have just been exchanged
	StepNoSwap       StepKind = "no_swap"       // Element already on the correct side
	StepPlacePivot   StepKind = "place_pivot"   // Pivot is about to move to its final index
	StepPartitioned  StepKind = "partitioned"   // Pivot reached its final index
	StepDescendLeft  StepKind = "descend_left"  // Announces the left subrange
	StepDescendRight StepKind = "descend_right" // Announces the right subrange
	StepCompleted    StepKind = "completed"     // Terminal snapshot
)

// NoIndex marks an absent pivot or range bound.
const NoIndex = -1

// Step is one snapshot of the sort. Array is always a private copy of the
// working array, so later mutations never leak into recorded steps.
type Step struct {
	Kind        StepKind `json:"kind"`
	Array       []int    `json:"array"`
	PivotIndex  int      `json:"pivotIndex"`
	Left        int      `json:"left"`
	Right       int      `json:"right"`
	Comparing   []int    `json:"comparing"`
	Swapping    []int    `json:"swapping"`
	Partitioned bool     `json:"partitioned"`
	Completed   bool     `json:"completed"`
	Explanation string   `json:"explanation"`
	Comparisons int      `json:"comparisons"`
	Swaps       int      `json:"swaps"`
}

// Clone returns a copy of the step that shares no slices with the receiver.
func (s Step) Clone() Step {
	c := s
	c.Array = CopyInts(s.Array)
	c.Comparing = CopyInts(s.Comparing)
	c.Swapping = CopyInts(s.Swapping)
	return c
}

// InRange reports whether index lies inside the step's active subrange.
func (s Step) InRange(index int) bool {
	return s.Left != NoIndex && s.Right != NoIndex && index >= s.Left && index <= s.Right
}

// IsComparing reports whether index is one of the compared positions.
func (s Step) IsComparing(index int) bool {
	return containsIndex(s.Comparing, index)
}

// IsSwapping reports whether index is one of the exchanged positions.
func (s Step) IsSwapping(index int) bool {
	return containsIndex(s.Swapping, index)
}

// SortReport is the terminal artifact of a traced sort run.
type SortReport struct {
	Steps            []Step `json:"steps"`
	TotalComparisons int    `json:"totalComparisons"`
	TotalSwaps       int    `json:"totalSwaps"`
	FinalArray       []int  `json:"finalArray"`
}

// Last returns the terminal step of the report.
// It returns false for a report without steps.
func (r *SortReport) Last() (Step, bool) {
	if r == nil || len(r.Steps) == 0 {
		return Step{}, false
	}
	return r.Steps[len(r.Steps)-1], true
}

// CopyInts returns a copy of values. A nil input yields an empty, non-nil slice
// so that JSON encodes it as [] rather than null.
func CopyInts(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	return out
}

func containsIndex(indices []int, index int) bool {
	for _, i := range indices {
		if i == index {
			return true
		}
	}
	return false
}
