package domain

// Reason qualifies a Verdict.
type Reason string

const (
	ReasonEmptyStack                  Reason = "empty_stack"
	ReasonAcceptingState              Reason = "accepting_state"
	ReasonAcceptingStateAndEmptyStack Reason = "accepting_state_and_empty_stack"
	ReasonInputNotExhausted           Reason = "input_not_exhausted"
	ReasonNotAccepted                 Reason = "not_accepted"
)

// Verdict is the outcome of evaluating a halted run.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Reason   Reason `json:"reason"`
}

func (v Verdict) String() string {
	if v.Accepted {
		return "ACCEPT (" + string(v.Reason) + ")"
	}
	return "REJECT (" + string(v.Reason) + ")"
}
