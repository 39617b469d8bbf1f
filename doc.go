/*
Package quicktrace records and replays the execution trace of an in-place
quicksort for teaching and visualization.

Instead of merely sorting, the engine emits an ordered, replayable log of every
decision it makes (pivot choice, comparison, swap, partition boundary,
completion), each step carrying an exact snapshot of the array and the running
comparison/swap counters. The log can be stepped through forward and backward,
persisted, rendered in a terminal, exported as a recursion tree, or served over
HTTP and MCP.

# Concept

The algorithm is a Lomuto-partition quicksort with the rightmost element of the
active range as pivot. The engine is pure and total: any finite integer slice,
including an empty one, yields a report whose first step is the starting array
and whose last (and only completed) step holds the sorted array.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/quicktrace"
	)

	func main() {
		eng := quicktrace.New()

		report := eng.Sort(context.Background(), []int{5, 2, 8})
		for i, step := range report.Steps {
			fmt.Printf("%2d %v %s\n", i, step.Array, step.Explanation)
		}
	}

Use Record to persist a run in the configured store (in memory by default) and
the replay package to step through it.
*/
package quicktrace
