package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Report lists the findings of Inspect. None of them make a definition
// unusable; they point at transitions or states that can never matter.
type Report struct {
	// Unreachable holds states no transition path from the initial state reaches.
	Unreachable []domain.StateID
	// Shadowed holds indexes of transitions that an earlier transition always wins over.
	Shadowed []int
	// Undeclared describes symbols used by transitions but missing from a declared alphabet.
	Undeclared []string
}

// Empty reports whether the definition produced no findings.
func (r Report) Empty() bool {
	return len(r.Unreachable) == 0 && len(r.Shadowed) == 0 && len(r.Undeclared) == 0
}

// Findings renders the report one finding per line.
func (r Report) Findings() []string {
	var out []string
	for _, id := range r.Unreachable {
		out = append(out, fmt.Sprintf("state %d is unreachable from the initial state", id))
	}
	for _, i := range r.Shadowed {
		out = append(out, fmt.Sprintf("transition %d is shadowed by an earlier transition", i))
	}
	out = append(out, r.Undeclared...)
	return out
}

// Inspect crawls the transition graph of def starting from its initial state.
func Inspect(def *domain.Definition) Report {
	var report Report

	visited := map[domain.StateID]bool{}
	queue := []domain.StateID{def.Initial}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, t := range def.Transitions {
			if t.From == current && !visited[t.To] {
				queue = append(queue, t.To)
			}
		}
	}
	for _, id := range def.States() {
		if !visited[id] {
			report.Unreachable = append(report.Unreachable, id)
		}
	}

	for i, t := range def.Transitions {
		for _, earlier := range def.Transitions[:i] {
			if shadows(earlier, t) {
				report.Shadowed = append(report.Shadowed, i)
				break
			}
		}
	}

	report.Undeclared = undeclared(def)
	return report
}

// Validate returns an error describing every finding, or nil.
func Validate(def *domain.Definition) error {
	report := Inspect(def)
	if report.Empty() {
		return nil
	}
	findings := report.Findings()
	return fmt.Errorf("automaton %s: found %d issues:\n- %s", def.ID, len(findings), strings.Join(findings, "\n- "))
}

// shadows reports whether a, declared before b, matches every configuration b matches.
// The stack axis must agree exactly since an epsilon top only matches the empty stack.
func shadows(a, b domain.Transition) bool {
	if a.From != b.From || a.Top != b.Top {
		return false
	}
	return a.Input.IsEpsilon() || a.Input == b.Input
}

func undeclared(def *domain.Definition) []string {
	var out []string

	if len(def.InputAlphabet) > 0 {
		declared := set(def.InputAlphabet)
		for i, t := range def.Transitions {
			if !t.Input.IsEpsilon() && !declared[t.Input] {
				out = append(out, fmt.Sprintf("transition %d: input symbol %s is not in the input alphabet", i, t.Input))
			}
		}
	}

	if len(def.StackAlphabet) > 0 {
		declared := set(def.StackAlphabet)
		for i, s := range def.InitialStack {
			if !declared[s] {
				out = append(out, fmt.Sprintf("initial stack position %d: symbol %s is not in the stack alphabet", i, s))
			}
		}
		for i, t := range def.Transitions {
			if !t.Top.IsEpsilon() && !declared[t.Top] {
				out = append(out, fmt.Sprintf("transition %d: stack symbol %s is not in the stack alphabet", i, t.Top))
			}
			for _, s := range t.Push {
				if !declared[s] {
					out = append(out, fmt.Sprintf("transition %d: pushed symbol %s is not in the stack alphabet", i, s))
					break
				}
			}
		}
	}
	return out
}

func set(symbols []domain.Symbol) map[domain.Symbol]bool {
	m := make(map[domain.Symbol]bool, len(symbols))
	for _, s := range symbols {
		m[s] = true
	}
	return m
}
