package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/stretchr/testify/require"
)

// PalindromeYAML is the declarative form of Palindrome.
const PalindromeYAML = `id: palindrome
description: "Binary words followed by '#' and their reversal."
input_alphabet: "01#"
stack_alphabet: "S01#"
initial_state: 0
initial_stack: "S"
accepting: [2]
transitions:
  - { from_state: 0, from_input: "0", from_stack: "S", to_state: 0, to_stack: "S0" }
  - { from_state: 0, from_input: "1", from_stack: "S", to_state: 0, to_stack: "S1" }
  - { from_state: 0, from_input: "0", from_stack: "0", to_state: 0, to_stack: "00" }
  - { from_state: 0, from_input: "0", from_stack: "1", to_state: 0, to_stack: "10" }
  - { from_state: 0, from_input: "1", from_stack: "0", to_state: 0, to_stack: "01" }
  - { from_state: 0, from_input: "1", from_stack: "1", to_state: 0, to_stack: "11" }
  - { from_state: 0, from_input: "#", from_stack: "0", to_state: 1, to_stack: "0" }
  - { from_state: 0, from_input: "#", from_stack: "1", to_state: 1, to_stack: "1" }
  - { from_state: 1, from_input: "0", from_stack: "0", to_state: 1, to_stack: "" }
  - { from_state: 1, from_input: "1", from_stack: "1", to_state: 1, to_stack: "" }
  - { from_state: 1, from_stack: "S", to_state: 2, to_stack: "S" }
`

// Palindrome returns the reference automaton for w#reverse(w) over {0,1}.
// It accepts by accepting state 2 with the bottom marker S left on the stack.
func Palindrome() *domain.Definition {
	t := func(from domain.StateID, in, top string, to domain.StateID, push string) domain.Transition {
		return domain.Transition{From: from, Input: sym(in), Top: sym(top), To: to, Push: domain.Symbols(push)}
	}
	def := &domain.Definition{
		ID:            "palindrome",
		Description:   "Binary words followed by '#' and their reversal.",
		InputAlphabet: domain.Symbols("01#"),
		StackAlphabet: domain.Symbols("S01#"),
		Accepting:     map[domain.StateID]bool{2: true},
		InitialStack:  domain.Symbols("S"),
		Initial:       0,
		Transitions: []domain.Transition{
			t(0, "0", "S", 0, "S0"),
			t(0, "1", "S", 0, "S1"),
			t(0, "0", "0", 0, "00"),
			t(0, "0", "1", 0, "10"),
			t(0, "1", "0", 0, "01"),
			t(0, "1", "1", 0, "11"),
			t(0, "#", "0", 1, "0"),
			t(0, "#", "1", 1, "1"),
			t(1, "0", "0", 1, ""),
			t(1, "1", "1", 1, ""),
			t(1, "", "S", 2, "S"),
		},
		Limits: domain.DefaultLimits(),
	}
	return def
}

// Balanced returns an automaton for balanced parentheses that accepts by empty stack
// in a non-accepting state: '(' pushes, ')' pops, and the initial marker is
// removed by the first '(' so the stack empties exactly when input ends balanced.
// An empty stack in state 1 accepts a new group through an epsilon stack match.
func Balanced() *domain.Definition {
	return &domain.Definition{
		ID:           "balanced",
		Accepting:    map[domain.StateID]bool{},
		InitialStack: domain.Symbols("Z"),
		Transitions: []domain.Transition{
			{From: 0, Input: domain.Lit('('), Top: domain.Lit('Z'), To: 1, Push: domain.Symbols("(")},
			{From: 1, Input: domain.Lit('('), Top: domain.Lit('('), To: 1, Push: domain.Symbols("((")},
			{From: 1, Input: domain.Lit(')'), Top: domain.Lit('('), To: 1, Push: nil},
			{From: 1, Input: domain.Lit('('), Top: domain.Epsilon, To: 1, Push: domain.Symbols("(")},
		},
		Limits: domain.DefaultLimits(),
	}
}

func sym(s string) domain.Symbol {
	if s == "" {
		return domain.Epsilon
	}
	return domain.Lit([]rune(s)[0])
}

// WriteFile writes content under dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	tmpDir := t.TempDir()

	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}
