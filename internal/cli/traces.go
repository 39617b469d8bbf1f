package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/quicktrace/internal/presentation/graph"
	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/aretw0/quicktrace/pkg/input"
)

// ListTraces prints one line per stored trace.
func (a *App) ListTraces(ctx context.Context, out io.Writer) error {
	ids, err := a.Engine.Traces(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		printSystemMessage(out, "No traces stored.")
		return nil
	}

	for _, id := range ids {
		t, err := a.Engine.Trace(ctx, id)
		if err != nil {
			a.Logger.Warn("Skipping unreadable trace", "trace_id", id, "err", err)
			continue
		}
		fmt.Fprintf(out, "%s  %s  %3d steps  [%s]\n",
			t.ID, t.CreatedAt.Local().Format(time.DateTime), len(t.Report.Steps), input.Format(t.Input))
	}
	return nil
}

// InspectTrace prints a stored trace as JSON or as a step log.
func (a *App) InspectTrace(ctx context.Context, id string, asJSON bool, out io.Writer) error {
	t, err := a.Engine.Trace(ctx, id)
	if err != nil {
		return fmt.Errorf("trace %q: %w", id, err)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	}

	fmt.Fprintf(out, "Trace:   %s\n", t.ID)
	fmt.Fprintf(out, "Created: %s\n", t.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(out, "Input:   [%s]\n\n", input.Format(t.Input))
	writeSteps(out, &t.Report)
	fmt.Fprintf(out, "\nComparisons: %d  Swaps: %d  Final: [%s]\n",
		t.Report.TotalComparisons, t.Report.TotalSwaps, input.Format(t.Report.FinalArray))
	return nil
}

// RemoveTraces deletes the given traces.
func (a *App) RemoveTraces(ctx context.Context, ids []string, out io.Writer) error {
	for _, id := range ids {
		if err := a.Engine.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete %q: %w", id, err)
		}
		printSystemMessage(out, "Removed '%s'.", id)
	}
	return nil
}

// LoadReport returns the report of a stored trace, or traces a fresh array
// from src when id is empty.
func (a *App) LoadReport(ctx context.Context, id string, src InputSource) (*domain.SortReport, error) {
	if id != "" {
		t, err := a.Engine.Trace(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("trace %q: %w", id, err)
		}
		return &t.Report, nil
	}

	values, err := a.Resolve(src)
	if err != nil {
		return nil, err
	}
	return a.Engine.Sort(ctx, values), nil
}

// WriteGraph prints the partition tree of report as Mermaid. A non-negative
// step highlights the replay position.
func WriteGraph(out io.Writer, report *domain.SortReport, step int) {
	var overlay *graph.Overlay
	if step >= 0 {
		overlay = &graph.Overlay{Step: step}
	}
	fmt.Fprint(out, graph.GenerateMermaid(report, overlay))
}
