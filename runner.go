package pushdown

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Runner feeds one input per line to an automaton and prints each verdict.
// This allows for easy testing and integration with different frontends (CLI, pipes, TUI).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Format   ResultFormatter
}

// ResultFormatter turns a result into the line printed for it.
// This allows for coloured rendering without coupling the core package to a terminal.
type ResultFormatter func(*domain.Result) string

// RunnerStats counts the outcomes of a Runner session.
type RunnerStats struct {
	Accepted int
	Rejected int
	Failed   int
}

// NewRunner creates a new Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// Run reads lines until EOF (or "exit"/"quit" in interactive mode) and runs each one.
// Aborted runs are reported and counted, not returned as errors.
func (r *Runner) Run(ctx context.Context, engine *Engine, id string) (RunnerStats, error) {
	var stats RunnerStats

	if r.Input == nil {
		return stats, fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return stats, fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	def, err := engine.Definition(ctx, id)
	if err != nil {
		return stats, err
	}

	format := r.Format
	if format == nil {
		format = PlainFormat
	}

	lineReader := bufio.NewReader(r.Input)

	if !r.Headless {
		fmt.Fprintf(r.Output, "--- pushdown: %s (one input per line, 'exit' to quit) ---\n", def.ID)
	}

	for {
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}

		text, err := lineReader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return stats, fmt.Errorf("input error: %w", err)
		}
		atEOF := err != nil

		// A final line without a trailing newline is still an input.
		if atEOF && text == "" {
			break
		}

		input := strings.TrimRight(text, "\r\n")
		if !r.Headless && (input == "exit" || input == "quit") {
			fmt.Fprintln(r.Output, "Bye!")
			break
		}

		result, runErr := engine.RunDefinition(ctx, def, input)
		switch {
		case result == nil:
			return stats, runErr
		case result.Failed():
			stats.Failed++
		case result.Verdict.Accepted:
			stats.Accepted++
		default:
			stats.Rejected++
		}
		fmt.Fprintln(r.Output, format(result))

		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		if atEOF {
			break
		}
	}
	return stats, nil
}

// PlainFormat renders "<input>\t<verdict>" without colours.
func PlainFormat(result *domain.Result) string {
	if result.Failed() {
		return fmt.Sprintf("%q\tERROR (%s)", result.Input, result.Failure)
	}
	return fmt.Sprintf("%q\t%s", result.Input, result.Verdict)
}
