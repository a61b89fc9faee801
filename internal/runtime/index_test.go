package runtime

import (
	"testing"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindTransition(t *testing.T) {
	def := &domain.Definition{
		Transitions: []domain.Transition{
			{From: 0, Input: domain.Lit('a'), Top: domain.Lit('S'), To: 1},
			{From: 0, Input: domain.Lit('a'), Top: domain.Lit('S'), To: 2}, // shadowed
			{From: 0, Input: domain.Lit('b'), Top: domain.Epsilon, To: 3},
			{From: 1, Input: domain.Epsilon, Top: domain.Lit('S'), To: 4},
			{From: 2, Input: domain.Lit(0), Top: domain.Lit(0), To: 5},
		},
	}

	tests := []struct {
		name   string
		rs     *domain.RunState
		wantOK bool
		wantTo domain.StateID
	}{
		{
			name:   "First Match Wins",
			rs:     &domain.RunState{State: 0, Stack: domain.Symbols("S"), Tape: domain.Symbols("a")},
			wantOK: true,
			wantTo: 1,
		},
		{
			name:   "Epsilon Stack Needs Empty Stack",
			rs:     &domain.RunState{State: 0, Stack: domain.Symbols("S"), Tape: domain.Symbols("b")},
			wantOK: false,
		},
		{
			name:   "Epsilon Stack Matches Empty Stack",
			rs:     &domain.RunState{State: 0, Tape: domain.Symbols("b")},
			wantOK: true,
			wantTo: 3,
		},
		{
			name:   "Epsilon Input At End Of Tape",
			rs:     &domain.RunState{State: 1, Stack: domain.Symbols("S"), Tape: domain.Symbols("x"), Head: 1},
			wantOK: true,
			wantTo: 4,
		},
		{
			name:   "Epsilon Input Mid Tape",
			rs:     &domain.RunState{State: 1, Stack: domain.Symbols("S"), Tape: domain.Symbols("xy")},
			wantOK: true,
			wantTo: 4,
		},
		{
			name:   "Literal Input Never Matches End Of Tape",
			rs:     &domain.RunState{State: 0, Stack: domain.Symbols("S"), Tape: domain.Symbols("a"), Head: 1},
			wantOK: false,
		},
		{
			name:   "NUL Literal Is Not Epsilon",
			rs:     &domain.RunState{State: 2, Stack: []domain.Symbol{domain.Lit(0)}, Tape: []domain.Symbol{domain.Lit(0)}},
			wantOK: true,
			wantTo: 5,
		},
		{
			name:   "NUL Literal Does Not Match Empty Stack",
			rs:     &domain.RunState{State: 2, Tape: []domain.Symbol{domain.Lit(0)}},
			wantOK: false,
		},
		{
			name:   "Unknown State",
			rs:     &domain.RunState{State: 9, Stack: domain.Symbols("S"), Tape: domain.Symbols("a")},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.rs.Clone()
			got, ok := FindTransition(def, tt.rs)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantTo, got.To)
			}
			assert.Equal(t, before, tt.rs, "lookup must not mutate the run state")
		})
	}
}

func TestApply_StackReplacement(t *testing.T) {
	tests := []struct {
		name      string
		stack     string
		push      string
		wantStack string
	}{
		{name: "Pop", stack: "SA", push: "", wantStack: "S"},
		{name: "Replace", stack: "SA", push: "B", wantStack: "SB"},
		{name: "Grow", stack: "SA", push: "BC", wantStack: "SBC"},
		{name: "Empty With Empty", stack: "", push: "", wantStack: ""},
		{name: "Empty With Push", stack: "", push: "XY", wantStack: "XY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &domain.RunState{Stack: domain.Symbols(tt.stack), Tape: domain.Symbols("a")}
			apply(rs, domain.Transition{Input: domain.Lit('a'), To: 7, Push: domain.Symbols(tt.push)})
			assert.Equal(t, tt.wantStack, domain.FormatSymbols(rs.Stack))
			assert.Equal(t, domain.StateID(7), rs.State)
			assert.Equal(t, 1, rs.Head)
			assert.Equal(t, 1, rs.Steps)
		})
	}

	t.Run("Epsilon Input Keeps Head", func(t *testing.T) {
		rs := &domain.RunState{Stack: domain.Symbols("S"), Tape: domain.Symbols("a")}
		apply(rs, domain.Transition{Input: domain.Epsilon, Push: domain.Symbols("S")})
		assert.Equal(t, 0, rs.Head)
	})

	t.Run("Head Never Passes End", func(t *testing.T) {
		rs := &domain.RunState{Stack: domain.Symbols("S"), Tape: domain.Symbols("a"), Head: 1}
		apply(rs, domain.Transition{Input: domain.Lit('a'), Push: domain.Symbols("S")})
		assert.Equal(t, 1, rs.Head)
	})
}
