package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// errStopped marks inputs skipped after a fail-fast abort.
var errStopped = errors.New("skipped after an earlier run aborted")

// Runner executes batches of inputs through an Executor.
type Runner struct {
	Executor    ports.Executor
	Logger      *slog.Logger
	Concurrency int
	FailFast    bool
}

// Item is the outcome of one input. Result is nil only when the run could not
// start at all; an aborted run has both a Result and an Err.
type Item struct {
	Input  string
	Result *domain.Result
	Err    error
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Failed   int `json:"failed"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%d inputs: %d accepted, %d rejected, %d failed", s.Total, s.Accepted, s.Rejected, s.Failed)
}

// NewRunner creates a Runner bound to exec.
func NewRunner(exec ports.Executor, opts ...Option) *Runner {
	r := &Runner{
		Executor:    exec,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every input against the automaton identified by id.
//
// Per-input failures (stack overflow, step limit) are reported in the matching
// Item and do not stop the batch unless FailFast is set, in which case the first
// abort is returned and the remaining inputs are skipped. Otherwise the returned
// error is reserved for problems that affect the whole batch: an unknown
// automaton or a cancelled context.
func (r *Runner) Run(ctx context.Context, id string, inputs []string) ([]Item, error) {
	if _, err := r.Executor.Definition(ctx, id); err != nil {
		return nil, err
	}

	items := make([]Item, len(inputs))
	for i, input := range inputs {
		items[i].Input = input
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)

	for i := range inputs {
		if gctx.Err() != nil {
			items[i].Err = errStopped
			continue
		}

		// Each goroutine owns items[i], so no locking is needed.
		g.Go(func() error {
			if gctx.Err() != nil {
				items[i].Err = errStopped
				return nil
			}

			result, err := r.Executor.Run(gctx, id, items[i].Input)
			items[i].Result = result
			items[i].Err = err

			if err == nil {
				r.Logger.Debug("input finished", "automaton", id, "index", i, "verdict", result.Verdict.String())
				return nil
			}

			r.Logger.Warn("input aborted", "automaton", id, "index", i, "error", err)
			if result == nil || r.FailFast {
				return fmt.Errorf("input %d: %w", i, err)
			}
			return nil
		})
	}

	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return items, ctxErr
	}
	return items, err
}

// Summarize counts accepted, rejected and failed items.
func Summarize(items []Item) Summary {
	s := Summary{Total: len(items)}
	for _, item := range items {
		switch {
		case item.Err != nil || item.Result == nil:
			s.Failed++
		case item.Result.Verdict.Accepted:
			s.Accepted++
		default:
			s.Rejected++
		}
	}
	return s
}
