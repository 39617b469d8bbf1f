package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSortStart    EventType = "sort_start"
	EventStep         EventType = "step"
	EventSortComplete EventType = "sort_complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SortEvent marks the start or the end of a traced run.
type SortEvent struct {
	EventBase
	Input  []int       `json:"input"`
	Report *SortReport `json:"report,omitempty"` // Only set on completion
}

// StepEvent carries one step of the log in order.
type StepEvent struct {
	EventBase
	Index int  `json:"index"`
	Step  Step `json:"step"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnSortStart    func(context.Context, *SortEvent)
	OnStep         func(context.Context, *StepEvent)
	OnSortComplete func(context.Context, *SortEvent)
}
