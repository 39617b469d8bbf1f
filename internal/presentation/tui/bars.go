package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/muesli/termenv"
)

// Role is the highlight class of one element in a step.
type Role int

const (
	RoleIdle Role = iota
	RoleInRange
	RoleComparing
	RoleSwapping
	RolePivot
	RolePlaced
)

var roleStyle = map[Role]struct {
	color string
	label string
}{
	RoleIdle:      {"#9ca3af", ""},
	RoleInRange:   {"#60a5fa", ""},
	RoleComparing: {"#eab308", "comparing"},
	RoleSwapping:  {"#f97316", "swapping"},
	RolePivot:     {"#ef4444", "pivot"},
	RolePlaced:    {"#22c55e", "placed"},
}

var legendOrder = []Role{RolePivot, RoleComparing, RoleSwapping, RolePlaced, RoleInRange, RoleIdle}

var legendNames = map[Role]string{
	RolePivot:     "pivot",
	RoleComparing: "comparing",
	RoleSwapping:  "swapping",
	RolePlaced:    "placed",
	RoleInRange:   "active range",
	RoleIdle:      "outside range",
}

// RoleOf classifies index within step.
func RoleOf(step domain.Step, index int) Role {
	switch {
	case step.Partitioned && index == step.PivotIndex:
		return RolePlaced
	case index == step.PivotIndex:
		return RolePivot
	case step.IsSwapping(index):
		return RoleSwapping
	case step.IsComparing(index):
		return RoleComparing
	case step.InRange(index):
		return RoleInRange
	default:
		return RoleIdle
	}
}

// BarRenderer draws a step as horizontal bars, one line per element.
type BarRenderer struct {
	Profile termenv.Profile
	// Width is the length of the longest bar.
	Width int
	// Max is the value drawn at full width. Values are clamped to it.
	Max int
}

// NewBarRenderer creates a renderer scaled to the largest value of the
// report's initial array.
func NewBarRenderer(p termenv.Profile, report *domain.SortReport) *BarRenderer {
	top := 0
	if report != nil && len(report.Steps) > 0 {
		for _, v := range report.Steps[0].Array {
			if v > top {
				top = v
			}
		}
	}
	return &BarRenderer{Profile: p, Width: 40, Max: top}
}

// Render draws every element of step.
func (r *BarRenderer) Render(step domain.Step) string {
	var sb strings.Builder
	for i, v := range step.Array {
		role := RoleOf(step, i)
		style := roleStyle[role]

		bar := r.Profile.String(strings.Repeat("█", r.barLength(v))).Foreground(r.Profile.Color(style.color))
		line := fmt.Sprintf("%3d │ %s %d", i, bar, v)
		if style.label != "" {
			line += "  " + style.label
		}
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Legend returns the color key.
func (r *BarRenderer) Legend() string {
	parts := make([]string, 0, len(legendOrder))
	for _, role := range legendOrder {
		name := legendNames[role]
		swatch := r.Profile.String("■").Foreground(r.Profile.Color(roleStyle[role].color))
		parts = append(parts, fmt.Sprintf("%s %s", swatch, name))
	}
	return strings.Join(parts, "  ")
}

func (r *BarRenderer) barLength(v int) int {
	if v <= 0 || r.Max <= 0 || r.Width <= 0 {
		return 0
	}
	if v >= r.Max {
		return r.Width
	}
	n := v * r.Width / r.Max
	if n == 0 {
		n = 1
	}
	return n
}
