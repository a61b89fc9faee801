package pushdown

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/loam"
	"github.com/aretw0/pushdown/internal/dto"
	"github.com/aretw0/pushdown/internal/runtime"
	loamAdapter "github.com/aretw0/pushdown/pkg/adapters/loam"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/observability"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the pushdown library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime     *runtime.Engine
	loader      ports.DefinitionLoader
	store       ports.RunStore
	metrics     *observability.Metrics
	runtimeOpts []runtime.EngineOption
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom DefinitionLoader, bypassing the default Loam initialization.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStepLimit aborts runs after n applied transitions (n <= 0 disables the guard).
func WithStepLimit(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithStepLimit(n))
	}
}

// WithStackCap overrides the stack capacity declared by each definition.
func WithStackCap(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithStackCap(n))
	}
}

// WithStore persists every finished run.
func WithStore(s ports.RunStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithMetrics records every run in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New initializes a new Engine.
// By default, it uses a Loam repository at the given path.
// If WithLoader option is provided, repoPath can be empty and Loam is skipped.
func New(repoPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	// Apply Options first to check if a loader is provided
	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}

		eng.Name = filepath.Base(absPath)

		// Strict mode keeps numbers consistent across JSON and YAML documents.
		// The engine never writes definitions, so the repository is opened read-only.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}

		typedRepo := loam.NewTypedRepository[dto.Metadata](repo)
		eng.loader = loamAdapter.New(typedRepo)
	} else if repoPath != "" {
		eng.Name = filepath.Base(repoPath)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("repository", eng.Name)
	}

	hooks := eng.hooks
	if eng.metrics != nil {
		hooks = domain.CombineHooks(eng.hooks, eng.metrics.Hooks())
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(hooks),
		runtime.WithLogger(eng.logger),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)

	eng.runtime = runtime.NewEngine(runtimeOpts...)

	return eng, nil
}

// Definition returns the validated definition identified by id.
func (e *Engine) Definition(ctx context.Context, id string) (*domain.Definition, error) {
	return e.loader.GetDefinition(ctx, id)
}

// Definitions lists the IDs of all available definitions.
func (e *Engine) Definitions(ctx context.Context) ([]string, error) {
	return e.loader.ListDefinitions(ctx)
}

// Run loads the definition identified by id and executes it over input.
func (e *Engine) Run(ctx context.Context, id, input string) (*domain.Result, error) {
	def, err := e.loader.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.RunDefinition(ctx, def, input)
}

// RunDefinition executes def over input and evaluates acceptance.
//
// When the run aborts (stack overflow, step limit, cancellation) the returned
// Result is still populated: Final holds the last good configuration and
// Failure the failure kind. The error is returned alongside it.
func (e *Engine) RunDefinition(ctx context.Context, def *domain.Definition, input string) (*domain.Result, error) {
	rs, trace, runErr := e.runtime.Run(ctx, def, input)
	if rs == nil {
		return nil, runErr
	}

	result := &domain.Result{
		ID:           uuid.NewString(),
		DefinitionID: def.ID,
		Input:        input,
		Final:        rs.Snapshot(),
		Trace:        trace,
		CreatedAt:    time.Now().UTC(),
	}

	logger := e.logger.With("automaton", def.ID, "run_id", result.ID)

	if runErr != nil {
		result.Failure = string(runtime.FailureOf(runErr))
		logger.Warn("run aborted", "failure", result.Failure, "error", runErr)
	} else {
		result.Verdict = runtime.Evaluate(def, rs)
		logger.Debug("run finished", "verdict", result.Verdict.String(), "steps", rs.Steps)
	}

	if e.metrics != nil {
		e.metrics.Observe(result)
	}

	if e.store != nil {
		// Persisting uses a fresh context so an aborted run is still recorded.
		if err := e.store.Save(context.WithoutCancel(ctx), result); err != nil {
			return result, errors.Join(runErr, fmt.Errorf("failed to save run %s: %w", result.ID, err))
		}
	}

	return result, runErr
}

// Evaluate applies the acceptance table to a halted configuration.
func (e *Engine) Evaluate(def *domain.Definition, rs *domain.RunState) domain.Verdict {
	return runtime.Evaluate(def, rs)
}

// Loader returns the underlying DefinitionLoader used by the engine.
func (e *Engine) Loader() ports.DefinitionLoader {
	return e.loader
}

// Store returns the configured run store, or nil.
func (e *Engine) Store() ports.RunStore {
	return e.store
}
