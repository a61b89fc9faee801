package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "PUSHDOWN_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge     = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8       = errors.New("input contains invalid UTF-8 sequences")
	ErrControlCharacters = errors.New("input contains control characters")
)

// ValidateInput checks input received from an untrusted transport (HTTP, MCP).
//
// Inputs are never rewritten: every rune is a tape symbol, so stripping one would
// change the word being recognised. Oversized inputs, invalid UTF-8 and control
// characters other than tab are rejected instead.
func ValidateInput(input string) error {
	limit := maxInputSize()
	if len(input) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}

	for i, r := range input {
		if unicode.IsControl(r) && r != '\t' {
			return fmt.Errorf("%w: %U at byte %d", ErrControlCharacters, r, i)
		}
	}
	return nil
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
