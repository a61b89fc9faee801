package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventStep     EventType = "step"
	EventHalt     EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp    time.Time `json:"timestamp"`
	Type         EventType `json:"type"`
	DefinitionID string    `json:"definition_id"`
}

// StepEvent reports one applied transition together with the configuration after it.
type StepEvent struct {
	EventBase
	Transition Transition `json:"transition"`
	Snapshot   Snapshot   `json:"snapshot"`
}

// RunEvent marks the start or the end of a run.
// Err is set on halt when the run failed.
type RunEvent struct {
	EventBase
	Input    string   `json:"input"`
	Snapshot Snapshot `json:"snapshot"`
	Err      error    `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks are purely observational and never influence the run.
type LifecycleHooks struct {
	OnRunStart func(context.Context, *RunEvent)
	OnStep     func(context.Context, *StepEvent)
	OnHalt     func(context.Context, *RunEvent)
}

// CombineHooks fans every callback out to all the given hooks, in order.
func CombineHooks(all ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *RunEvent) {
			for _, h := range all {
				if h.OnRunStart != nil {
					h.OnRunStart(ctx, e)
				}
			}
		},
		OnStep: func(ctx context.Context, e *StepEvent) {
			for _, h := range all {
				if h.OnStep != nil {
					h.OnStep(ctx, e)
				}
			}
		},
		OnHalt: func(ctx context.Context, e *RunEvent) {
			for _, h := range all {
				if h.OnHalt != nil {
					h.OnHalt(ctx, e)
				}
			}
		},
	}
}
