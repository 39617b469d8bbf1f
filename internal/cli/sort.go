package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/aretw0/quicktrace/pkg/input"
)

// SortOptions controls the output of RunSort.
type SortOptions struct {
	JSON  bool
	Steps bool
	Save  bool
}

// RunSort traces values and prints a summary, the step log or JSON.
// With Save the trace is persisted and its ID printed.
func (a *App) RunSort(ctx context.Context, values []int, opts SortOptions, out io.Writer) error {
	var (
		trace  *domain.Trace
		report *domain.SortReport
	)
	if opts.Save {
		t, err := a.Engine.Record(ctx, values)
		if err != nil {
			return err
		}
		trace, report = t, &t.Report
	} else {
		report = a.Engine.Sort(ctx, values)
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if trace != nil {
			return enc.Encode(trace)
		}
		return enc.Encode(report)
	}

	if opts.Steps {
		writeSteps(out, report)
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Input:  [%s]\n", input.Format(values))
	fmt.Fprintf(out, "Sorted: [%s]\n", input.Format(report.FinalArray))
	fmt.Fprintf(out, "Steps: %d  Comparisons: %d  Swaps: %d\n",
		len(report.Steps), report.TotalComparisons, report.TotalSwaps)
	if trace != nil {
		printSystemMessage(out, "Trace saved as '%s'.", trace.ID)
	}
	return nil
}

func writeSteps(out io.Writer, report *domain.SortReport) {
	for i, s := range report.Steps {
		fmt.Fprintf(out, "%3d  %-13s [%s]  %s\n", i+1, s.Kind, input.Format(s.Array), s.Explanation)
	}
}
