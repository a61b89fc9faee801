package domain

// RunState is the mutable configuration of one execution.
// It is owned by a single run and mutated only by the engine's step function.
type RunState struct {
	State StateID  `json:"state"`
	Stack []Symbol `json:"stack"`
	Tape  []Symbol `json:"tape"`
	Head  int      `json:"head"`
	Steps int      `json:"steps"`
}

// NewRunState creates the initial configuration of def over input.
func NewRunState(def *Definition, input string) *RunState {
	stack := make([]Symbol, len(def.InitialStack))
	copy(stack, def.InitialStack)
	return &RunState{
		State: def.Initial,
		Stack: stack,
		Tape:  Symbols(input),
	}
}

// Top returns the top of the stack, or false when the stack is empty.
func (rs *RunState) Top() (Symbol, bool) {
	if len(rs.Stack) == 0 {
		return Epsilon, false
	}
	return rs.Stack[len(rs.Stack)-1], true
}

// Current returns the symbol under the head, or false at the end of the tape.
func (rs *RunState) Current() (Symbol, bool) {
	if rs.Head >= len(rs.Tape) {
		return Epsilon, false
	}
	return rs.Tape[rs.Head], true
}

// Exhausted reports whether every input symbol has been consumed.
func (rs *RunState) Exhausted() bool {
	return rs.Head >= len(rs.Tape)
}

// Clone returns a deep copy that shares nothing with rs.
func (rs *RunState) Clone() *RunState {
	if rs == nil {
		return nil
	}
	next := *rs
	next.Stack = append([]Symbol(nil), rs.Stack...)
	next.Tape = append([]Symbol(nil), rs.Tape...)
	return &next
}

// Snapshot is the observable part of a RunState at one point of a trace.
type Snapshot struct {
	Step  int     `json:"step"`
	State StateID `json:"state"`
	Stack string  `json:"stack"`
	Head  int     `json:"head"`
}

// Snapshot captures the state, stack contents and head position of rs.
func (rs *RunState) Snapshot() Snapshot {
	return Snapshot{
		Step:  rs.Steps,
		State: rs.State,
		Stack: FormatSymbols(rs.Stack),
		Head:  rs.Head,
	}
}
