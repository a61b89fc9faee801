package domain

import "fmt"

// StateID identifies a state of the automaton. It carries no structure beyond identity.
type StateID uint

// Transition maps (From, Input, Top) to (To, Push).
//
// Push replaces the current top of the stack: an empty Push pops, a single
// symbol swaps the top, and N symbols grow the stack by N-1. Push[0] is pushed
// first, so the last element ends up on top.
type Transition struct {
	From  StateID  `json:"from_state"`
	Input Symbol   `json:"from_input"`
	Top   Symbol   `json:"from_stack"`
	To    StateID  `json:"to_state"`
	Push  []Symbol `json:"to_stack"`
}

// Growth returns the net change in stack depth when t fires on a stack of the given depth.
func (t Transition) Growth(depth int) int {
	if depth == 0 {
		return len(t.Push)
	}
	return len(t.Push) - 1
}

func (t Transition) String() string {
	return fmt.Sprintf("(%d,%s,%s)->(%d,%q)", t.From, t.Input, t.Top, t.To, FormatSymbols(t.Push))
}
