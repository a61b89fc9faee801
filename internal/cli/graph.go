package cli

import (
	"context"
	"io"

	"github.com/aretw0/pushdown/internal/presentation/graph"
)

// GraphOptions configures the graph command.
type GraphOptions struct {
	EngineOptions

	Automaton string
	// Input, when set, is run first and the visited states are highlighted.
	Input *string
	Out   io.Writer
}

// Graph writes the Mermaid state diagram of an automaton.
func Graph(ctx context.Context, opts GraphOptions) error {
	engine, err := createEngine(opts.EngineOptions, createLogger(opts.Debug))
	if err != nil {
		return err
	}

	id, err := determineAutomaton(ctx, engine, opts.Automaton)
	if err != nil {
		return err
	}

	def, err := engine.Definition(ctx, id)
	if err != nil {
		return err
	}

	var overlay *graph.RunOverlay
	if opts.Input != nil {
		// An aborted run still carries the trace up to the failure.
		result, runErr := engine.RunDefinition(ctx, def, *opts.Input)
		if result == nil {
			return runErr
		}
		overlay = graph.OverlayFromTrace(result.Trace)
	}

	_, err = io.WriteString(opts.Out, graph.GenerateMermaid(def, overlay))
	return err
}
