package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Symbol is a single character of an alphabet or Epsilon.
// The zero value is Epsilon, so a NUL rune has to be built with Lit to be literal.
type Symbol struct {
	r       rune
	literal bool
}

// Epsilon matches without consuming input on the input axis,
// and matches only an empty stack on the stack axis.
var Epsilon = Symbol{}

// Lit returns the literal symbol for r.
func Lit(r rune) Symbol {
	return Symbol{r: r, literal: true}
}

// IsEpsilon reports whether s is the Epsilon symbol.
func (s Symbol) IsEpsilon() bool { return !s.literal }

// Rune returns the literal rune. It is 0 for Epsilon.
func (s Symbol) Rune() rune { return s.r }

func (s Symbol) String() string {
	if !s.literal {
		return "ε"
	}
	return string(s.r)
}

// MarshalJSON encodes literals as one-character strings and Epsilon as "".
func (s Symbol) MarshalJSON() ([]byte, error) {
	if !s.literal {
		return []byte(`""`), nil
	}
	return json.Marshal(string(s.r))
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (s *Symbol) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("symbol: %w", err)
	}
	sym, err := ParseSymbol(raw)
	if err != nil {
		return err
	}
	*s = sym
	return nil
}

// ParseSymbol converts a declarative field into a Symbol.
// An empty string is Epsilon; anything longer than one rune is rejected.
func ParseSymbol(raw string) (Symbol, error) {
	runes := []rune(raw)
	switch len(runes) {
	case 0:
		return Epsilon, nil
	case 1:
		return Lit(runes[0]), nil
	default:
		return Epsilon, fmt.Errorf("%w: symbol %q has more than one character", ErrMalformedDefinition, raw)
	}
}

// Symbols converts every rune of s into a literal symbol.
func Symbols(s string) []Symbol {
	out := make([]Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, Lit(r))
	}
	return out
}

// FormatSymbols renders a symbol sequence as a string, bottom (or head) first.
func FormatSymbols(syms []Symbol) string {
	var sb strings.Builder
	for _, s := range syms {
		sb.WriteString(s.String())
	}
	return sb.String()
}
