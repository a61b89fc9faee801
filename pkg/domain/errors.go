package domain

import "errors"

// ErrMalformedDefinition is returned by loaders when a definition cannot be built.
// The engine itself never returns it.
var ErrMalformedDefinition = errors.New("malformed definition")

// ErrStackOverflow is returned when a stack replacement would exceed the stack capacity.
var ErrStackOverflow = errors.New("stack overflow")

// ErrStepLimitExceeded is returned when a run applies more transitions than the configured guard allows.
var ErrStepLimitExceeded = errors.New("step limit exceeded")

// ErrDefinitionNotFound is returned when an automaton ID cannot be found by a loader.
var ErrDefinitionNotFound = errors.New("definition not found")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")
