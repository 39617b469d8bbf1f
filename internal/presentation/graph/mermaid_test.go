package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/quicktrace/internal/presentation/graph"
	"github.com/aretw0/quicktrace/internal/runtime"
	"github.com/aretw0/quicktrace/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	engine := runtime.NewEngine()

	tests := []struct {
		name     string
		input    []int
		contains []string
		excludes []string
	}{
		{
			name:  "Two Level Tree",
			input: []int{5, 2, 8},
			contains: []string{
				"graph TD",
				"p0[\"[0..2] pivot 8 → 2\"]",
				"p1[\"[0..1] pivot 2 → 0\"]",
				"p0 -- \"left\" --> p1",
			},
			excludes: []string{"right", "classDef"},
		},
		{
			name:  "Both Sides",
			input: []int{1, 9, 2, 5, 7, 3, 4},
			contains: []string{
				"p0[\"[0..6] pivot 4 → 3\"]",
				"p0 -- \"left\" --> p1",
				"-- \"right\" -->",
			},
		},
		{
			name:     "Nothing To Partition",
			input:    []int{42},
			contains: []string{"sorted((\"nothing to partition\"))"},
			excludes: []string{"p0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := graph.GenerateMermaid(engine.Sort(tt.input), nil)
			for _, c := range tt.contains {
				if !strings.Contains(output, c) {
					t.Errorf("expected output to contain %q\nGot:\n%s", c, output)
				}
			}
			for _, e := range tt.excludes {
				if strings.Contains(output, e) {
					t.Errorf("expected output not to contain %q\nGot:\n%s", e, output)
				}
			}
		})
	}
}

func TestGenerateMermaid_OneNodePerPartition(t *testing.T) {
	report := runtime.NewEngine().Sort([]int{9, 3, 7, 1, 8, 2, 6, 4, 5})

	pivots := 0
	for _, s := range report.Steps {
		if s.Kind == domain.StepPivot {
			pivots++
		}
	}

	output := graph.GenerateMermaid(report, nil)
	nodes := strings.Count(output, " pivot ")
	if nodes != pivots {
		t.Errorf("expected %d nodes, got %d\n%s", pivots, nodes, output)
	}
	edges := strings.Count(output, "-->")
	if edges != pivots-1 {
		t.Errorf("expected %d edges, got %d\n%s", pivots-1, edges, output)
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	report := runtime.NewEngine().Sort([]int{5, 2, 8})

	// Step 8 enters [0..1] after [0..2] finished partitioning.
	output := graph.GenerateMermaid(report, &graph.Overlay{Step: 8})
	expected := []string{
		"classDef done",
		"classDef current",
		"class p0 done;",
		"class p1 current;",
	}
	for _, e := range expected {
		if !strings.Contains(output, e) {
			t.Errorf("expected overlay output to contain %q\nGot:\n%s", e, output)
		}
	}

	// Before any partition starts nothing is styled.
	early := graph.GenerateMermaid(report, &graph.Overlay{Step: 0})
	if strings.Contains(early, "class p") {
		t.Errorf("expected no styled nodes at step 0\nGot:\n%s", early)
	}

	final := graph.GenerateMermaid(report, &graph.Overlay{Step: len(report.Steps) - 1})
	if !strings.Contains(final, "class p1 done;") || strings.Contains(final, "current;") {
		t.Errorf("expected all nodes done at the last step\nGot:\n%s", final)
	}
}
