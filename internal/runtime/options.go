package runtime

import (
	"log/slog"

	"github.com/aretw0/pushdown/pkg/domain"
)

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStepLimit aborts runs that apply more than n transitions.
// A value <= 0 disables the guard, in which case a table that keeps matching
// at the end of input never terminates.
func WithStepLimit(n int) EngineOption {
	return func(e *Engine) {
		e.stepLimit = n
	}
}

// WithStackCap overrides the stack capacity taken from the definition's Limits.
func WithStackCap(n int) EngineOption {
	return func(e *Engine) {
		e.stackCap = n
	}
}

// WithTrace controls whether Run records a snapshot per step (default true).
func WithTrace(enabled bool) EngineOption {
	return func(e *Engine) {
		e.recordTrace = enabled
	}
}
