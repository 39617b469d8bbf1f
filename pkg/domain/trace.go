package domain

import "time"

// Trace is a SortReport persisted under an identifier.
type Trace struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	Input     []int      `json:"input"`
	Report    SortReport `json:"report"`
}

// NewTrace builds a Trace for the given input and report.
// The input is copied so the caller may reuse its slice.
func NewTrace(id string, createdAt time.Time, input []int, report *SortReport) *Trace {
	t := &Trace{
		ID:        id,
		CreatedAt: createdAt,
		Input:     CopyInts(input),
	}
	if report != nil {
		t.Report = *report
	}
	return t
}
