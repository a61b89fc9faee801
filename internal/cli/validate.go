package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/pushdown/internal/validator"
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	EngineOptions

	// Strict turns lint findings (unreachable states, shadowed transitions) into failures.
	Strict bool
	Out    io.Writer
}

// Validate loads every definition and reports structural errors and lint findings.
// It returns an error when any definition fails to load, or has findings in strict mode.
func Validate(ctx context.Context, opts ValidateOptions) error {
	engine, err := createEngine(opts.EngineOptions, createLogger(opts.Debug))
	if err != nil {
		return err
	}

	ids, err := engine.Definitions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list automata: %w", err)
	}
	if len(ids) == 0 {
		return fmt.Errorf("no automata found")
	}

	var errs []error
	for _, id := range ids {
		def, err := engine.Definition(ctx, id)
		if err != nil {
			fmt.Fprintf(opts.Out, "✗ %s\n", id)
			errs = append(errs, err)
			continue
		}

		report := validator.Inspect(def)
		if report.Empty() {
			fmt.Fprintf(opts.Out, "✓ %s (%d states, %d transitions)\n", id, len(def.States()), len(def.Transitions))
			continue
		}

		fmt.Fprintf(opts.Out, "! %s\n", id)
		for _, finding := range report.Findings() {
			fmt.Fprintf(opts.Out, "    %s\n", finding)
		}
		if opts.Strict {
			errs = append(errs, validator.Validate(def))
		}
	}

	return errors.Join(errs...)
}
