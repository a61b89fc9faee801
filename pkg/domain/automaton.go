package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Default capacity bounds used when a definition does not override them.
const (
	DefaultStateCap = 64
	DefaultStackCap = 64
)

// Limits bounds the state space and the stack depth of a definition.
type Limits struct {
	StateCap int `json:"state_cap"`
	StackCap int `json:"stack_cap"`
}

// DefaultLimits returns the 64/64 bounds.
func DefaultLimits() Limits {
	return Limits{StateCap: DefaultStateCap, StackCap: DefaultStackCap}
}

// WithDefaults returns l with zero capacities replaced by the defaults.
func (l Limits) WithDefaults() Limits {
	if l.StateCap == 0 {
		l.StateCap = DefaultStateCap
	}
	if l.StackCap == 0 {
		l.StackCap = DefaultStackCap
	}
	return l
}

// Definition is the immutable description of a DPDA.
// Once validated it is shared read-only between any number of runs.
type Definition struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`

	// InputAlphabet and StackAlphabet are documentary; the engine never enforces them.
	InputAlphabet []Symbol `json:"input_alphabet,omitempty"`
	StackAlphabet []Symbol `json:"stack_alphabet,omitempty"`

	Accepting    map[StateID]bool `json:"accepting"`
	Transitions  []Transition     `json:"transitions"`
	InitialStack []Symbol         `json:"initial_stack"`
	Initial      StateID          `json:"initial_state"`
	Limits       Limits           `json:"limits"`
}

// IsAccepting reports whether id belongs to the accepting set.
func (d *Definition) IsAccepting(id StateID) bool {
	return d.Accepting[id]
}

// States returns every state mentioned by the definition, sorted.
func (d *Definition) States() []StateID {
	seen := map[StateID]bool{d.Initial: true}
	for id := range d.Accepting {
		seen[id] = true
	}
	for _, t := range d.Transitions {
		seen[t.From] = true
		seen[t.To] = true
	}
	out := make([]StateID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AcceptingStates returns the accepting set as a sorted slice.
func (d *Definition) AcceptingStates() []StateID {
	out := make([]StateID, 0, len(d.Accepting))
	for id, ok := range d.Accepting {
		if ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefinitionError lists every structural problem found while validating a definition.
type DefinitionError struct {
	ID       string
	Problems []string
}

func (e *DefinitionError) Error() string {
	name := e.ID
	if name == "" {
		name = "<unnamed>"
	}
	if len(e.Problems) == 1 {
		return fmt.Sprintf("automaton %s: %s", name, e.Problems[0])
	}
	return fmt.Sprintf("automaton %s: %d problems:\n  - %s", name, len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

// Unwrap makes every DefinitionError match ErrMalformedDefinition.
func (e *DefinitionError) Unwrap() error { return ErrMalformedDefinition }

// Validate checks the definition against its effective Limits.
// Zero limits are checked as the defaults; the definition itself is never modified.
func (d *Definition) Validate() error {
	limits := d.Limits.WithDefaults()

	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if limits.StateCap < 0 {
		addf("state_cap must be positive, got %d", limits.StateCap)
	}
	if limits.StackCap < 0 {
		addf("stack_cap must be positive, got %d", limits.StackCap)
	}

	inRange := func(id StateID) bool { return int(id) < limits.StateCap }

	if !inRange(d.Initial) {
		addf("initial state %d is outside [0,%d)", d.Initial, limits.StateCap)
	}
	for _, id := range d.AcceptingStates() {
		if !inRange(id) {
			addf("accepting state %d is outside [0,%d)", id, limits.StateCap)
		}
	}
	if len(d.InitialStack) > limits.StackCap {
		addf("initial stack has %d symbols, capacity is %d", len(d.InitialStack), limits.StackCap)
	}
	for i, s := range d.InitialStack {
		if s.IsEpsilon() {
			addf("initial stack position %d is epsilon", i)
		}
	}
	for i, t := range d.Transitions {
		if !inRange(t.From) {
			addf("transition %d: from_state %d is outside [0,%d)", i, t.From, limits.StateCap)
		}
		if !inRange(t.To) {
			addf("transition %d: to_state %d is outside [0,%d)", i, t.To, limits.StateCap)
		}
		for _, s := range t.Push {
			if s.IsEpsilon() {
				addf("transition %d: to_stack contains epsilon", i)
				break
			}
		}
	}

	if len(problems) > 0 {
		return &DefinitionError{ID: d.ID, Problems: problems}
	}
	return nil
}
