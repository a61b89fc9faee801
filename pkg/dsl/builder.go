package dsl

import (
	"fmt"

	"github.com/aretw0/pushdown/pkg/adapters/memory"
	"github.com/aretw0/pushdown/pkg/domain"
)

// Builder manages the construction of one definition.
// Rules keep the order in which To is called, which is their match priority.
type Builder struct {
	def domain.Definition
}

// New creates a builder for the automaton id, starting in state 0 with an empty stack.
func New(id string) *Builder {
	return &Builder{
		def: domain.Definition{
			ID:        id,
			Accepting: make(map[domain.StateID]bool),
			Limits:    domain.DefaultLimits(),
		},
	}
}

// Describe sets the human readable description.
func (b *Builder) Describe(text string) *Builder {
	b.def.Description = text
	return b
}

// Initial sets the initial state.
func (b *Builder) Initial(state domain.StateID) *Builder {
	b.def.Initial = state
	return b
}

// InitialStack sets the stack content at the start of every run, bottom first.
func (b *Builder) InitialStack(stack string) *Builder {
	b.def.InitialStack = domain.Symbols(stack)
	return b
}

// Accept adds states to the accepting set.
func (b *Builder) Accept(states ...domain.StateID) *Builder {
	for _, s := range states {
		b.def.Accepting[s] = true
	}
	return b
}

// Alphabets declares the input and stack alphabets. They are documentary.
func (b *Builder) Alphabets(input, stack string) *Builder {
	b.def.InputAlphabet = domain.Symbols(input)
	b.def.StackAlphabet = domain.Symbols(stack)
	return b
}

// Limits overrides the state and stack capacities.
func (b *Builder) Limits(stateCap, stackCap int) *Builder {
	b.def.Limits = domain.Limits{StateCap: stateCap, StackCap: stackCap}.WithDefaults()
	return b
}

// From starts a rule leaving state.
func (b *Builder) From(state domain.StateID) *RuleBuilder {
	return &RuleBuilder{
		builder: b,
		rule:    domain.Transition{From: state},
	}
}

// Build validates and returns the definition. The builder can keep being used;
// every call returns an independent copy.
func (b *Builder) Build() (*domain.Definition, error) {
	def := b.def
	def.Accepting = make(map[domain.StateID]bool, len(b.def.Accepting))
	for id, ok := range b.def.Accepting {
		def.Accepting[id] = ok
	}
	def.Transitions = append([]domain.Transition(nil), b.def.Transitions...)
	def.InitialStack = append([]domain.Symbol(nil), b.def.InitialStack...)

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Loader builds every definition and serves them from memory.
func Loader(builders ...*Builder) (*memory.Loader, error) {
	defs := make([]*domain.Definition, 0, len(builders))
	for _, b := range builders {
		def, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", b.def.ID, err)
		}
		defs = append(defs, def)
	}
	return memory.NewLoader(defs...)
}
