package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/quicktrace/pkg/domain"
)

// StepMarkdown describes step (zero-based index out of total) as a
// markdown panel.
func StepMarkdown(step domain.Step, index, total int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "### Step %d/%d\n\n", index+1, total)
	fmt.Fprintf(&sb, "%s %s\n\n", kindIcon(step.Kind), step.Explanation)
	fmt.Fprintf(&sb, "- **Comparisons:** %d\n", step.Comparisons)
	fmt.Fprintf(&sb, "- **Swaps:** %d\n", step.Swaps)
	if step.Left != domain.NoIndex && step.Right >= step.Left {
		fmt.Fprintf(&sb, "- **Range:** [%d..%d]\n", step.Left, step.Right)
	}

	if step.Completed {
		fmt.Fprintf(&sb, "\n> **Sorted!** Finished with %d comparisons and %d swaps.\n",
			step.Comparisons, step.Swaps)
	}
	return sb.String()
}

func kindIcon(k domain.StepKind) string {
	switch k {
	case domain.StepStart:
		return "▶"
	case domain.StepPivot:
		return "◆"
	case domain.StepCompare:
		return "⇄"
	case domain.StepSwap, domain.StepSwapped:
		return "↔"
	case domain.StepPlacePivot, domain.StepPartitioned:
		return "✔"
	case domain.StepDescendLeft:
		return "←"
	case domain.StepDescendRight:
		return "→"
	case domain.StepCompleted:
		return "★"
	default:
		return "•"
	}
}

const algorithmListing = "```go\n" + `func quickSort(a []int, low, high int) {
	if low < high {
		p := partition(a, low, high)
		quickSort(a, low, p-1)
		quickSort(a, p+1, high)
	}
}

func partition(a []int, low, high int) int {
	pivot := a[high]
	i := low - 1
	for j := low; j < high; j++ {
		if a[j] <= pivot {
			i++
			a[i], a[j] = a[j], a[i]
		}
	}
	a[i+1], a[high] = a[high], a[i+1]
	return i + 1
}
` + "```\n"

// AlgorithmMarkdown returns the traced algorithm and its complexity.
func AlgorithmMarkdown() string {
	var sb strings.Builder
	sb.WriteString("## Quicksort (Lomuto partition)\n\n")
	sb.WriteString(algorithmListing)
	sb.WriteString("\n| Case | Time | Space |\n")
	sb.WriteString("|---|---|---|\n")
	sb.WriteString("| Best | O(n log n) | O(log n) |\n")
	sb.WriteString("| Average | O(n log n) | O(log n) |\n")
	sb.WriteString("| Worst | O(n²) | O(n) |\n")
	sb.WriteString("\nIn-place: yes. Stable: no. The worst case occurs on already sorted input, where the rightmost pivot is always the maximum.\n")
	return sb.String()
}
