package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Engine is the core DPDA runner.
// It holds configuration only, so a single Engine may run many inputs concurrently.
type Engine struct {
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	stepLimit   int
	stackCap    int
	recordTrace bool
}

// NewEngine creates a new engine with the given options.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		recordTrace: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes def over input until no transition applies.
//
// It returns the terminal configuration and the trace (the initial snapshot
// followed by one snapshot per applied transition). When the run aborts, the
// returned state is the last configuration before the failing step and the
// error is a *RunError.
func (e *Engine) Run(ctx context.Context, def *domain.Definition, input string) (*domain.RunState, []domain.Snapshot, error) {
	if def == nil {
		return nil, nil, fmt.Errorf("cannot run a nil definition")
	}

	rs := domain.NewRunState(def, input)
	capacity := e.capacity(def)

	var trace []domain.Snapshot
	if e.recordTrace {
		trace = append(trace, rs.Snapshot())
	}

	e.emitRunStart(ctx, def, input, rs)
	e.logger.Debug("run started", "automaton", def.ID, "input_len", len(rs.Tape), "stack_cap", capacity, "step_limit", e.stepLimit)

	if len(rs.Stack) > capacity {
		err := e.fail(KindStackOverflow, rs, fmt.Errorf("%w: initial stack of %d exceeds capacity %d", domain.ErrStackOverflow, len(rs.Stack), capacity))
		e.emitHalt(ctx, def, input, rs, err)
		return rs, trace, err
	}

	for {
		if err := ctx.Err(); err != nil {
			runErr := e.fail(KindCanceled, rs, err)
			e.emitHalt(ctx, def, input, rs, runErr)
			return rs, trace, runErr
		}

		t, ok := FindTransition(def, rs)
		if !ok {
			break
		}

		if e.stepLimit > 0 && rs.Steps >= e.stepLimit {
			err := e.fail(KindStepLimitExceeded, rs, fmt.Errorf("%w: %d transitions applied", domain.ErrStepLimitExceeded, rs.Steps))
			e.emitHalt(ctx, def, input, rs, err)
			return rs, trace, err
		}

		if depth := len(rs.Stack) + t.Growth(len(rs.Stack)); depth > capacity {
			err := e.fail(KindStackOverflow, rs, fmt.Errorf("%w: %s needs depth %d, capacity is %d", domain.ErrStackOverflow, t, depth, capacity))
			e.emitHalt(ctx, def, input, rs, err)
			return rs, trace, err
		}

		apply(rs, t)

		snap := rs.Snapshot()
		if e.recordTrace {
			trace = append(trace, snap)
		}
		e.emitStep(ctx, def, t, snap)
	}

	e.logger.Debug("run halted", "automaton", def.ID, "state", rs.State, "head", rs.Head, "steps", rs.Steps)
	e.emitHalt(ctx, def, input, rs, nil)
	return rs, trace, nil
}

// apply mutates rs according to t. The caller has already checked capacity.
func apply(rs *domain.RunState, t domain.Transition) {
	// An empty stack with an empty replacement has nothing to pop.
	if n := len(rs.Stack); n > 0 {
		rs.Stack = rs.Stack[:n-1]
	}
	rs.Stack = append(rs.Stack, t.Push...)
	rs.State = t.To

	if !t.Input.IsEpsilon() && rs.Head < len(rs.Tape) {
		rs.Head++
	}
	rs.Steps++
}

func (e *Engine) capacity(def *domain.Definition) int {
	if e.stackCap > 0 {
		return e.stackCap
	}
	if def.Limits.StackCap > 0 {
		return def.Limits.StackCap
	}
	return domain.DefaultStackCap
}

func (e *Engine) fail(kind FailureKind, rs *domain.RunState, cause error) *RunError {
	e.logger.Debug("run aborted", "kind", kind, "step", rs.Steps, "error", cause)
	return &RunError{
		Kind:  kind,
		Step:  rs.Steps + 1,
		State: rs.Snapshot(),
		Cause: cause,
	}
}

func (e *Engine) emitRunStart(ctx context.Context, def *domain.Definition, input string, rs *domain.RunState) {
	if e.hooks.OnRunStart == nil {
		return
	}
	e.hooks.OnRunStart(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunStart, DefinitionID: def.ID},
		Input:     input,
		Snapshot:  rs.Snapshot(),
	})
}

func (e *Engine) emitStep(ctx context.Context, def *domain.Definition, t domain.Transition, snap domain.Snapshot) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep, DefinitionID: def.ID},
		Transition: t,
		Snapshot:   snap,
	})
}

func (e *Engine) emitHalt(ctx context.Context, def *domain.Definition, input string, rs *domain.RunState, err error) {
	if e.hooks.OnHalt == nil {
		return
	}
	e.hooks.OnHalt(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventHalt, DefinitionID: def.ID},
		Input:     input,
		Snapshot:  rs.Snapshot(),
		Err:       err,
	})
}
