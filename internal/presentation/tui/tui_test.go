package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/quicktrace/internal/presentation/tui"
	"github.com/aretw0/quicktrace/internal/runtime"
	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleOf(t *testing.T) {
	step := domain.Step{
		Array:      []int{5, 2, 8, 1},
		PivotIndex: 2,
		Left:       0,
		Right:      2,
		Comparing:  []int{0, 2},
		Swapping:   []int{1, 0},
	}

	assert.Equal(t, tui.RoleSwapping, tui.RoleOf(step, 0))
	assert.Equal(t, tui.RoleSwapping, tui.RoleOf(step, 1))
	assert.Equal(t, tui.RolePivot, tui.RoleOf(step, 2))
	assert.Equal(t, tui.RoleIdle, tui.RoleOf(step, 3))

	step.Swapping = nil
	assert.Equal(t, tui.RoleComparing, tui.RoleOf(step, 0))
	assert.Equal(t, tui.RoleInRange, tui.RoleOf(step, 1))

	step.Partitioned = true
	assert.Equal(t, tui.RolePlaced, tui.RoleOf(step, 2))
}

func TestBarRenderer_Render(t *testing.T) {
	report := runtime.NewEngine().Sort([]int{5, 2, 8})
	r := tui.NewBarRenderer(termenv.Ascii, report)

	out := r.Render(report.Steps[2])
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "  0 │ "+strings.Repeat("█", 25)+" 5  comparing", lines[0])
	assert.Equal(t, "  1 │ "+strings.Repeat("█", 10)+" 2", lines[1])
	assert.Equal(t, "  2 │ "+strings.Repeat("█", 40)+" 8  pivot", lines[2])
}

func TestBarRenderer_NonPositiveValues(t *testing.T) {
	report := runtime.NewEngine().Sort([]int{0, -3, 4})
	r := tui.NewBarRenderer(termenv.Ascii, report)

	out := r.Render(report.Steps[0])
	assert.Contains(t, out, "  0 │  0")
	assert.Contains(t, out, "  1 │  -3")
	assert.Contains(t, out, strings.Repeat("█", 40)+" 4")
}

func TestBarRenderer_EmptyReport(t *testing.T) {
	report := runtime.NewEngine().Sort(nil)
	r := tui.NewBarRenderer(termenv.Ascii, report)

	assert.Empty(t, r.Render(report.Steps[0]))
	assert.Contains(t, r.Legend(), "pivot")
	assert.NotContains(t, tui.StepMarkdown(report.Steps[0], 0, len(report.Steps)), "**Range:**")
}

func TestStepMarkdown(t *testing.T) {
	report := runtime.NewEngine().Sort([]int{5, 2, 8})

	first := tui.StepMarkdown(report.Steps[0], 0, len(report.Steps))
	assert.Contains(t, first, "Step 1/13")
	assert.Contains(t, first, "Starting QuickSort with array [5, 2, 8].")
	assert.Contains(t, first, "**Range:** [0..2]")
	assert.NotContains(t, first, "Sorted!")

	last, ok := report.Last()
	require.True(t, ok)
	md := tui.StepMarkdown(last, 12, 13)
	assert.Contains(t, md, "Step 13/13")
	assert.Contains(t, md, "**Comparisons:** 3")
	assert.Contains(t, md, "**Swaps:** 1")
	assert.Contains(t, md, "Sorted!")
	assert.NotContains(t, md, "**Range:**")
}

func TestAlgorithmMarkdown(t *testing.T) {
	md := tui.AlgorithmMarkdown()
	assert.Contains(t, md, "func partition")
	assert.Contains(t, md, "| Worst | O(n²) | O(n) |")
}

func TestNewRenderer_Plain(t *testing.T) {
	render, err := tui.NewRenderer(tui.StylePlain)
	require.NoError(t, err)

	out, err := render("# Title\n\nbody text")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body text")
}

func TestPrintBanner_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)

	assert.NotContains(t, buf.String(), "\x1b[")
	assert.False(t, tui.IsTerminal(&buf))
	assert.Equal(t, termenv.Ascii, tui.ProfileFor(&buf))
}
