package runner

import (
	"log/slog"
)

// DefaultConcurrency is the number of runs executed in parallel when no option is given.
const DefaultConcurrency = 4

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithConcurrency bounds the number of parallel runs. Values < 1 mean one at a time.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n < 1 {
			n = 1
		}
		r.Concurrency = n
	}
}

// WithFailFast stops scheduling new inputs after the first aborted run.
func WithFailFast(enabled bool) Option {
	return func(r *Runner) {
		r.FailFast = enabled
	}
}
