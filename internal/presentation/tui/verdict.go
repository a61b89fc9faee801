package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Styler colours verdict lines for a given writer. Colours are dropped
// automatically when the writer is not a terminal.
type Styler struct {
	out *termenv.Output
}

// NewStyler creates a Styler for w.
func NewStyler(w io.Writer, opts ...termenv.OutputOption) *Styler {
	return &Styler{out: termenv.NewOutput(w, opts...)}
}

// Verdict renders "ACCEPT (reason)" in green, "REJECT (reason)" in red and
// aborted runs as "ERROR (kind)" in yellow.
func (s *Styler) Verdict(result *domain.Result) string {
	switch {
	case result.Failed():
		return s.out.String(fmt.Sprintf("ERROR (%s)", result.Failure)).Foreground(s.out.Color("#eab308")).Bold().String()
	case result.Verdict.Accepted:
		return s.out.String(result.Verdict.String()).Foreground(s.out.Color("#22c55e")).Bold().String()
	default:
		return s.out.String(result.Verdict.String()).Foreground(s.out.Color("#ef4444")).Bold().String()
	}
}

// Line renders the one-line summary of a run: quoted input, verdict and final configuration.
func (s *Styler) Line(result *domain.Result) string {
	final := result.Final
	details := s.out.String(fmt.Sprintf("state=%d stack=%s head=%d steps=%d",
		final.State, stackOrEpsilon(final.Stack), final.Head, final.Step)).Faint().String()
	return fmt.Sprintf("%q\t%s\t%s", result.Input, s.Verdict(result), details)
}

// Trace renders one line per snapshot, marking the head position inside the input.
func (s *Styler) Trace(result *domain.Result) []string {
	tape := []rune(result.Input)
	lines := make([]string, 0, len(result.Trace))
	for _, snap := range result.Trace {
		head := snap.Head
		if head > len(tape) {
			head = len(tape)
		}
		consumed := string(tape[:head])
		rest := s.out.String(string(tape[head:])).Underline().String()
		lines = append(lines, fmt.Sprintf("%4d  q%-3d %-12s %s%s",
			snap.Step, snap.State, stackOrEpsilon(snap.Stack), consumed, rest))
	}
	return lines
}

func stackOrEpsilon(stack string) string {
	if stack == "" {
		return "ε"
	}
	return stack
}
