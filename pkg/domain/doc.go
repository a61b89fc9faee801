/*
Package domain contains the core domain models of the pushdown engine.

It defines the immutable description of a Deterministic Pushdown Automaton and
the mutable snapshot of a single run over an input tape. This package is kept
pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Symbol: A literal rune or the distinguished Epsilon value.
  - Transition: (state, input, stack top) -> (state, replacement of the top).
  - Definition: States, alphabets, accepting set and the ordered transition table.
  - RunState: Current state, stack and input head of one execution.
  - Verdict: The accept/reject outcome and its reason.
  - Result: A finished run as returned to callers and persisted by stores.
*/
package domain
