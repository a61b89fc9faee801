package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/logging"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/runner"
)

// Exit codes of the run command.
const (
	ExitAccept = 0
	ExitReject = 1
	ExitError  = 2
)

// errInterrupted is returned by InterruptibleReader once its cancel channel is closed.
var errInterrupted = errors.New("interrupted")

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to keep Stdout for verdicts).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Start", "automaton", e.DefinitionID, "input", e.Input, "stack", e.Snapshot.Stack)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Step",
				"automaton", e.DefinitionID,
				"step", e.Snapshot.Step,
				"transition", e.Transition.String(),
				"state", e.Snapshot.State,
				"stack", e.Snapshot.Stack,
				"head", e.Snapshot.Head,
			)
		},
		OnHalt: func(ctx context.Context, e *domain.RunEvent) {
			if e.Err != nil {
				logger.Debug("Run Halt (Error)", "automaton", e.DefinitionID, "step", e.Snapshot.Step, "err", e.Err)
			} else {
				logger.Debug("Run Halt", "automaton", e.DefinitionID, "step", e.Snapshot.Step, "state", e.Snapshot.State)
			}
		},
	}
}

// InterruptibleReader wraps an io.Reader (like os.Stdin) and checks for a cancellation signal.
type InterruptibleReader struct {
	base   io.Reader
	cancel <-chan struct{}
}

func NewInterruptibleReader(base io.Reader, cancel <-chan struct{}) *InterruptibleReader {
	return &InterruptibleReader{
		base:   base,
		cancel: cancel,
	}
}

func (r *InterruptibleReader) Read(p []byte) (n int, err error) {
	select {
	case <-r.cancel:
		return 0, errInterrupted
	default:
	}

	// Read (This blocks!)
	n, err = r.base.Read(p)

	select {
	case <-r.cancel:
		return 0, errInterrupted
	default:
	}
	return n, err
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, errInterrupted)
}

func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}

// exitCodeFor maps a single result to the run command's exit code.
func exitCodeFor(result *domain.Result) int {
	switch {
	case result == nil || result.Failed():
		return ExitError
	case result.Verdict.Accepted:
		return ExitAccept
	default:
		return ExitReject
	}
}

// exitCodeForCounts folds many outcomes into one exit code: any failure wins, then any rejection.
func exitCodeForCounts(rejected, failed int) int {
	switch {
	case failed > 0:
		return ExitError
	case rejected > 0:
		return ExitReject
	default:
		return ExitAccept
	}
}

func exitCodeForStats(stats pushdown.RunnerStats) int {
	return exitCodeForCounts(stats.Rejected, stats.Failed)
}

func exitCodeForSummary(summary runner.Summary) int {
	return exitCodeForCounts(summary.Rejected, summary.Failed)
}
