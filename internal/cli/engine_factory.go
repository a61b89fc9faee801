package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/pkg/adapters/file"
)

// DefaultMaxSteps guards CLI runs against tables that keep matching at the end of input.
const DefaultMaxSteps = 10000

// EngineOptions holds the flags shared by every command that builds an engine.
type EngineOptions struct {
	// RepoPath is a directory of definitions read through loam.
	RepoPath string
	// File, when set, loads a single definition file instead of RepoPath.
	File     string
	Debug    bool
	MaxSteps int
	StackCap int
}

// createEngine initializes a pushdown engine with standard CLI conventions.
func createEngine(opts EngineOptions, logger *slog.Logger, extra ...pushdown.Option) (*pushdown.Engine, error) {
	engineOpts := []pushdown.Option{
		pushdown.WithLogger(logger),
		pushdown.WithStepLimit(opts.MaxSteps),
	}

	if opts.Debug {
		engineOpts = append(engineOpts, pushdown.WithLifecycleHooks(createDebugHooks(logger)))
	}
	if opts.StackCap > 0 {
		engineOpts = append(engineOpts, pushdown.WithStackCap(opts.StackCap))
	}

	repoPath := opts.RepoPath
	if opts.File != "" {
		loader, err := file.NewLoader(opts.File)
		if err != nil {
			return nil, err
		}
		engineOpts = append(engineOpts, pushdown.WithLoader(loader))
		repoPath = opts.File
	}

	engineOpts = append(engineOpts, extra...)

	engine, err := pushdown.New(repoPath, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	return engine, nil
}

// determineAutomaton resolves which automaton a command should use.
// An explicit request wins; otherwise the repository must hold exactly one definition.
func determineAutomaton(ctx context.Context, engine *pushdown.Engine, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}

	ids, err := engine.Definitions(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list automata: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("no automata found")
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("found %d automata (%s); choose one with --automaton", len(ids), strings.Join(ids, ", "))
	}
}
