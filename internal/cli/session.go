package cli

import (
	"context"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/presentation/tui"
)

// RunSession reads one input per line from opts.In and prints a verdict for each.
// The returned exit code folds every outcome of the session.
func RunSession(ctx context.Context, engine *pushdown.Engine, id string, opts RunOptions) (int, error) {
	quiet := opts.JSON || opts.Headless

	if !quiet {
		tui.PrintBanner(opts.Out)
	}

	r := pushdown.NewRunner()
	r.Input = NewInterruptibleReader(opts.In, ctx.Done())
	r.Output = opts.Out
	r.Headless = quiet
	if opts.JSON {
		r.Format = jsonFormat(opts.Trace)
	} else {
		r.Format = lineFormat(opts.Out, opts.Trace)
	}

	stats, err := r.Run(ctx, engine, id)
	if err = handleExecutionError(err); err != nil {
		return ExitError, err
	}

	if !quiet {
		printSystemMessage(opts.Out, "%d accepted, %d rejected, %d failed", stats.Accepted, stats.Rejected, stats.Failed)
	}
	return exitCodeForStats(stats), nil
}
