package dto

import (
	"errors"
	"fmt"

	"github.com/aretw0/pushdown/pkg/domain"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string // Field path, e.g. "transitions[2].from_input"
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap lets errors.Is match ErrMalformedDefinition as well as each field error.
func (e *AggregateError) Unwrap() []error {
	return append([]error{domain.ErrMalformedDefinition}, e.Errors...)
}

// ValidationErrors returns all validation errors if err wraps an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
