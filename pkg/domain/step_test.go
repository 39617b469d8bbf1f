package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_CloneIsIndependent(t *testing.T) {
	step := domain.Step{
		Array:     []int{3, 1, 2},
		Comparing: []int{0, 2},
		Swapping:  []int{},
	}

	clone := step.Clone()
	clone.Array[0] = 99
	clone.Comparing[0] = 7

	assert.Equal(t, []int{3, 1, 2}, step.Array)
	assert.Equal(t, []int{0, 2}, step.Comparing)
}

func TestStep_Roles(t *testing.T) {
	step := domain.Step{
		Left:      1,
		Right:     3,
		Comparing: []int{1, 3},
		Swapping:  []int{2, 3},
	}

	assert.False(t, step.InRange(0))
	assert.True(t, step.InRange(1))
	assert.True(t, step.InRange(3))
	assert.True(t, step.IsComparing(3))
	assert.False(t, step.IsComparing(2))
	assert.True(t, step.IsSwapping(2))

	outside := domain.Step{Left: domain.NoIndex, Right: domain.NoIndex}
	assert.False(t, outside.InRange(0))
}

func TestStep_JSONShape(t *testing.T) {
	step := domain.Step{
		Kind:       domain.StepStart,
		Array:      domain.CopyInts(nil),
		PivotIndex: domain.NoIndex,
		Left:       domain.NoIndex,
		Right:      domain.NoIndex,
		Comparing:  domain.CopyInts(nil),
		Swapping:   domain.CopyInts(nil),
	}

	data, err := json.Marshal(step)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, []any{}, raw["array"])
	assert.Equal(t, []any{}, raw["comparing"])
	assert.EqualValues(t, -1, raw["pivotIndex"])
	assert.Contains(t, raw, "explanation")
}

func TestSortReport_Last(t *testing.T) {
	var empty *domain.SortReport
	_, ok := empty.Last()
	assert.False(t, ok)

	report := &domain.SortReport{Steps: []domain.Step{{Kind: domain.StepStart}, {Kind: domain.StepCompleted}}}
	last, ok := report.Last()
	require.True(t, ok)
	assert.Equal(t, domain.StepCompleted, last.Kind)
}

func TestInputErrorsWrapInvalidInput(t *testing.T) {
	for _, err := range []error{domain.ErrMalformedEntry, domain.ErrOversizeInput, domain.ErrEmptyInput} {
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.NotErrorIs(t, domain.ErrTraceNotFound, domain.ErrInvalidInput)
}
