package runtime

import (
	"errors"
	"fmt"

	"github.com/aretw0/pushdown/pkg/domain"
)

// FailureKind names the category of a failed run.
type FailureKind string

const (
	KindStackOverflow     FailureKind = "stack_overflow"
	KindStepLimitExceeded FailureKind = "step_limit_exceeded"
	KindCanceled          FailureKind = "canceled"
)

// RunError reports why a run aborted and where.
// State is the configuration right before the failing step; it was not mutated.
type RunError struct {
	Kind  FailureKind
	Step  int
	State domain.Snapshot
	Cause error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run aborted at step %d (state %d, stack %q, head %d): %v",
		e.Step, e.State.State, e.State.Stack, e.State.Head, e.Cause)
}

// Unwrap exposes the sentinel (or context error) behind the failure.
func (e *RunError) Unwrap() error {
	return e.Cause
}

// FailureOf returns the failure kind carried by err, or "" when err is not a RunError.
func FailureOf(err error) FailureKind {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.Kind
	}
	return ""
}
