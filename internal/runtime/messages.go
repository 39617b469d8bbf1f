package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

func startMessage(array []int) string {
	return fmt.Sprintf("Starting QuickSort with array [%s]. We'll use the rightmost element as pivot.", joinInts(array))
}

func pivotMessage(low, high, pivot int) string {
	return fmt.Sprintf("Sorting subarray from index %d to %d. Pivot is %d at index %d.", low, high, pivot, high)
}

func compareMessage(value, pivot int) string {
	relation := ">"
	if value <= pivot {
		relation = "≤"
	}
	return fmt.Sprintf("Comparing %d with pivot %d. %d %s %d", value, pivot, value, relation, pivot)
}

func swapMessage(value, pivot, other int) string {
	return fmt.Sprintf("%d ≤ %d, so swap %d and %d", value, pivot, other, value)
}

func swappedMessage(a, b int) string {
	return fmt.Sprintf("After swap: %d and %d have been exchanged", a, b)
}

func noSwapMessage(value, pivot int) string {
	return fmt.Sprintf("%d ≤ %d, but no swap needed (elements are in same position)", value, pivot)
}

func placePivotMessage(pivot, index int) string {
	return fmt.Sprintf("Placing pivot %d in its correct position by swapping with element at index %d", pivot, index)
}

func partitionedMessage(pivot, index int) string {
	return fmt.Sprintf("Partition complete! Pivot %d is now in its final position at index %d.", pivot, index)
}

func descendLeftMessage(low, high int) string {
	return fmt.Sprintf("Now sorting left subarray from index %d to %d.", low, high)
}

func descendRightMessage(low, high int) string {
	return fmt.Sprintf("Now sorting right subarray from index %d to %d.", low, high)
}

func completedMessage(array []int) string {
	return fmt.Sprintf("QuickSort completed! Array is now sorted: [%s]", joinInts(array))
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
