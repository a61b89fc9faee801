package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/ports"
)

// Mask replaces redacted inputs and stacks.
const Mask = "***"

type redactionMiddleware struct {
	next     ports.RunStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that masks runs whose input matches any pattern.
// A masked run keeps its verdict, final state, head and step count; the input and
// stack are replaced by Mask and the trace is dropped, since every snapshot of it
// reveals pushed input symbols.
func NewRedactionMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		patterns[i] = re
	}
	return func(next ports.RunStore) ports.RunStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactionMiddleware) Save(ctx context.Context, result *domain.Result) error {
	if !m.matches(result.Input) {
		return m.next.Save(ctx, result)
	}

	// The caller keeps using result, so mask a copy.
	masked := *result
	masked.Input = Mask
	masked.Final.Stack = Mask
	masked.Trace = nil

	return m.next.Save(ctx, &masked)
}

func (m *redactionMiddleware) Load(ctx context.Context, runID string) (*domain.Result, error) {
	return m.next.Load(ctx, runID)
}

func (m *redactionMiddleware) Delete(ctx context.Context, runID string) error {
	return m.next.Delete(ctx, runID)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *redactionMiddleware) matches(input string) bool {
	for _, p := range m.patterns {
		if p.MatchString(input) {
			return true
		}
	}
	return false
}
