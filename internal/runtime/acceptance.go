package runtime

import "github.com/aretw0/pushdown/pkg/domain"

// Evaluate decides the verdict for a halted run.
//
// The input must be exhausted for any acceptance. After that, an empty stack
// in a non-accepting state accepts by EmptyStack, an accepting state with a
// non-empty stack accepts by AcceptingState, and both together accept by
// AcceptingStateAndEmptyStack.
func Evaluate(def *domain.Definition, rs *domain.RunState) domain.Verdict {
	if !rs.Exhausted() {
		return domain.Verdict{Accepted: false, Reason: domain.ReasonInputNotExhausted}
	}

	empty := len(rs.Stack) == 0
	accepting := def.IsAccepting(rs.State)

	switch {
	case empty && !accepting:
		return domain.Verdict{Accepted: true, Reason: domain.ReasonEmptyStack}
	case !empty && accepting:
		return domain.Verdict{Accepted: true, Reason: domain.ReasonAcceptingState}
	case empty && accepting:
		return domain.Verdict{Accepted: true, Reason: domain.ReasonAcceptingStateAndEmptyStack}
	default:
		return domain.Verdict{Accepted: false, Reason: domain.ReasonNotAccepted}
	}
}
