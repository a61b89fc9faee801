package runtime

import "github.com/aretw0/pushdown/pkg/domain"

// FindTransition returns the first transition of def, in declaration order,
// that applies to the configuration rs. No match is the normal halting condition.
//
// On the input axis a literal requires the head to be on that symbol, while
// Epsilon matches wherever the head is. On the stack axis a literal requires
// that symbol on top, while Epsilon matches only the empty stack.
func FindTransition(def *domain.Definition, rs *domain.RunState) (domain.Transition, bool) {
	input, hasInput := rs.Current()
	top, hasTop := rs.Top()

	for _, t := range def.Transitions {
		if t.From != rs.State {
			continue
		}
		if !matchInput(t.Input, input, hasInput) {
			continue
		}
		if !matchStack(t.Top, top, hasTop) {
			continue
		}
		return t, true
	}
	return domain.Transition{}, false
}

func matchInput(want, got domain.Symbol, present bool) bool {
	if want.IsEpsilon() {
		return true
	}
	return present && want == got
}

func matchStack(want, got domain.Symbol, present bool) bool {
	if want.IsEpsilon() {
		return !present
	}
	return present && want == got
}
