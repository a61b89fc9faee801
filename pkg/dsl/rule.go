package dsl

import "github.com/aretw0/pushdown/pkg/domain"

// RuleBuilder provides a fluent API for configuring a transition.
type RuleBuilder struct {
	rule    domain.Transition
	builder *Builder
}

// Read makes the rule consume symbol from the input.
func (r *RuleBuilder) Read(symbol rune) *RuleBuilder {
	r.rule.Input = domain.Lit(symbol)
	return r
}

// Top makes the rule require symbol on top of the stack.
func (r *RuleBuilder) Top(symbol rune) *RuleBuilder {
	r.rule.Top = domain.Lit(symbol)
	return r
}

// To completes the rule: move to state and replace the top with push,
// whose last character ends up on top. An empty push pops.
func (r *RuleBuilder) To(state domain.StateID, push string) *Builder {
	r.rule.To = state
	r.rule.Push = domain.Symbols(push)
	r.builder.def.Transitions = append(r.builder.def.Transitions, r.rule)
	return r.builder
}
