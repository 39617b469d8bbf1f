package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/quicktrace/pkg/domain"
)

// Overlay marks the replay position to visualize on the graph.
type Overlay struct {
	// Step is the zero-based index of the step being shown.
	Step int
}

// partitionNode is one processed subrange of the sort.
type partitionNode struct {
	id          string
	left, right int
	pivot       int
	final       int
	parent      int
	side        string
	startStep   int
	doneStep    int
}

// GenerateMermaid produces a Mermaid flowchart of the partition tree
// recorded in report: one node per subrange that was partitioned, with
// edges labeled by the side of the parent's pivot the child sorts.
// Ranges of fewer than two elements are never partitioned and do not
// appear. With an overlay, finished partitions are styled as done and the
// partition in progress at the overlay step as current.
func GenerateMermaid(report *domain.SortReport, overlay *Overlay) string {
	nodes := partitionTree(report)

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	if len(nodes) == 0 {
		sb.WriteString("    sorted((\"nothing to partition\"))\n")
		return sb.String()
	}

	for _, n := range nodes {
		fmt.Fprintf(&sb, "    %s[\"[%d..%d] pivot %d → %d\"]\n", n.id, n.left, n.right, n.pivot, n.final)
	}
	for _, n := range nodes {
		if n.parent < 0 {
			continue
		}
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", nodes[n.parent].id, n.side, n.id)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) so labels stay readable on both themes.
		sb.WriteString("    classDef done fill:#dcfce7,stroke:#15803d,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, n := range nodes {
			switch {
			case n.doneStep >= 0 && n.doneStep <= overlay.Step:
				fmt.Fprintf(&sb, "    class %s done;\n", n.id)
			case n.startStep <= overlay.Step:
				fmt.Fprintf(&sb, "    class %s current;\n", n.id)
			}
		}
	}

	return sb.String()
}

// partitionTree rebuilds the recursion from the step log. Subranges are
// entered in depth-first order, so the parent of a range is the nearest
// open range that contains it.
func partitionTree(report *domain.SortReport) []partitionNode {
	if report == nil {
		return nil
	}

	var nodes []partitionNode
	var open []int

	for i, step := range report.Steps {
		switch step.Kind {
		case domain.StepPivot:
			for len(open) > 0 {
				top := nodes[open[len(open)-1]]
				if top.left <= step.Left && step.Right <= top.right {
					break
				}
				open = open[:len(open)-1]
			}

			n := partitionNode{
				id:        fmt.Sprintf("p%d", len(nodes)),
				left:      step.Left,
				right:     step.Right,
				pivot:     step.Array[step.PivotIndex],
				final:     domain.NoIndex,
				parent:    -1,
				startStep: i,
				doneStep:  -1,
			}
			if len(open) > 0 {
				parent := nodes[open[len(open)-1]]
				n.parent = open[len(open)-1]
				n.side = "right"
				if step.Right < parent.final {
					n.side = "left"
				}
			}
			nodes = append(nodes, n)
			open = append(open, len(nodes)-1)

		case domain.StepPartitioned:
			if len(open) == 0 {
				continue
			}
			cur := &nodes[open[len(open)-1]]
			cur.final = step.PivotIndex
			cur.doneStep = i
		}
	}
	return nodes
}
