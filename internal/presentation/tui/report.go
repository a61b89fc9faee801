package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// TraceMarkdown describes a run as a Markdown document: a header with the
// verdict and a table with one row per snapshot.
func TraceMarkdown(def *domain.Definition, result *domain.Result) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Run of `%s`\n\n", def.ID))
	if def.Description != "" {
		sb.WriteString(def.Description + "\n\n")
	}

	sb.WriteString(fmt.Sprintf("- **Input:** %s\n", code(result.Input)))
	if result.Failed() {
		sb.WriteString(fmt.Sprintf("- **Outcome:** aborted (%s)\n", result.Failure))
	} else {
		sb.WriteString(fmt.Sprintf("- **Verdict:** %s\n", result.Verdict))
	}
	sb.WriteString(fmt.Sprintf("- **Steps:** %d\n\n", result.Final.Step))

	if len(result.Trace) == 0 {
		return sb.String()
	}

	tape := []rune(result.Input)
	sb.WriteString("| step | state | stack | head | remaining |\n")
	sb.WriteString("|---:|---:|---|---:|---|\n")
	for _, snap := range result.Trace {
		head := snap.Head
		if head > len(tape) {
			head = len(tape)
		}
		sb.WriteString(fmt.Sprintf("| %d | q%d | %s | %d | %s |\n",
			snap.Step, snap.State, code(snap.Stack), snap.Head, code(string(tape[head:]))))
	}
	return sb.String()
}

// code wraps s in a code span; empty strings render as ε.
func code(s string) string {
	if s == "" {
		return "ε"
	}
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}
