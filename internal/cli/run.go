package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/presentation/tui"
	"github.com/aretw0/pushdown/pkg/adapters/file"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/runner"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	EngineOptions

	Automaton   string
	Inputs      []string
	Trace       bool
	JSON        bool
	Report      bool
	Headless    bool
	StoreDir    string
	Concurrency int

	// In feeds the interactive session when no inputs are given. Defaults to os.Stdin.
	In io.Reader
	// Out receives verdicts. Defaults to os.Stdout.
	Out io.Writer
}

// Execute handles the 'run' command logic and returns the process exit code.
//
// One input runs once, several inputs run as a parallel batch, and no input
// starts a line-oriented session on In.
func Execute(ctx context.Context, opts RunOptions) (int, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	logger := createLogger(opts.Debug)

	var extra []pushdown.Option
	if opts.StoreDir != "" {
		extra = append(extra, pushdown.WithStore(file.NewStore(opts.StoreDir)))
	}

	engine, err := createEngine(opts.EngineOptions, logger, extra...)
	if err != nil {
		return ExitError, err
	}

	id, err := determineAutomaton(ctx, engine, opts.Automaton)
	if err != nil {
		return ExitError, err
	}

	switch len(opts.Inputs) {
	case 0:
		return RunSession(ctx, engine, id, opts)
	case 1:
		return runSingle(ctx, engine, id, opts)
	default:
		return runBatch(ctx, engine, id, opts, logger)
	}
}

func runSingle(ctx context.Context, engine *pushdown.Engine, id string, opts RunOptions) (int, error) {
	result, runErr := engine.Run(ctx, id, opts.Inputs[0])
	if result == nil {
		return ExitError, runErr
	}

	switch {
	case opts.JSON:
		if !opts.Trace {
			result.Trace = nil
		}
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return ExitError, fmt.Errorf("failed to encode result: %w", err)
		}
	case opts.Report:
		def, err := engine.Definition(ctx, id)
		if err != nil {
			return ExitError, err
		}
		render := tui.NewRenderer()
		out, err := render(tui.TraceMarkdown(def, result))
		if err != nil {
			return ExitError, fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprint(opts.Out, out)
	default:
		fmt.Fprintln(opts.Out, lineFormat(opts.Out, opts.Trace)(result))
	}

	return exitCodeFor(result), nil
}

func runBatch(ctx context.Context, engine *pushdown.Engine, id string, opts RunOptions, logger *slog.Logger) (int, error) {
	batch := runner.NewRunner(engine,
		runner.WithLogger(logger),
		runner.WithConcurrency(opts.Concurrency),
	)

	items, err := batch.Run(ctx, id, opts.Inputs)
	if items == nil {
		return ExitError, err
	}

	var format pushdown.ResultFormatter
	if opts.JSON {
		format = jsonFormat(opts.Trace)
	} else {
		format = lineFormat(opts.Out, opts.Trace)
	}

	for _, item := range items {
		if item.Result == nil {
			fmt.Fprintf(opts.Out, "%q\tERROR (%v)\n", item.Input, item.Err)
			continue
		}
		fmt.Fprintln(opts.Out, format(item.Result))
	}

	summary := runner.Summarize(items)
	if !opts.JSON {
		printSystemMessage(opts.Out, "%s", summary)
	}

	if isInterrupted(err) {
		err = nil
	}
	return exitCodeForSummary(summary), err
}

// lineFormat renders a result as a styled line, preceded by its trace when requested.
func lineFormat(w io.Writer, trace bool) pushdown.ResultFormatter {
	styler := tui.NewStyler(w)
	return func(result *domain.Result) string {
		if !trace {
			return styler.Line(result)
		}
		lines := append(styler.Trace(result), styler.Line(result))
		return strings.Join(lines, "\n")
	}
}

// jsonFormat renders a result as a single NDJSON line.
func jsonFormat(trace bool) pushdown.ResultFormatter {
	return func(result *domain.Result) string {
		out := *result
		if !trace {
			out.Trace = nil
		}
		data, err := json.Marshal(&out)
		if err != nil {
			return fmt.Sprintf(`{"error":%q}`, err.Error())
		}
		return string(data)
	}
}
