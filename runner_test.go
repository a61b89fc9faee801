package pushdown_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Headless(t *testing.T) {
	eng := newMemoryEngine(t)

	var out bytes.Buffer
	r := pushdown.NewRunner()
	r.Input = strings.NewReader("0#0\n01#10\n2\n1#1")
	r.Output = &out
	r.Headless = true

	stats, err := r.Run(context.Background(), eng, "palindrome")
	require.NoError(t, err)
	assert.Equal(t, pushdown.RunnerStats{Accepted: 3, Rejected: 1}, stats)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "\"0#0\"\tACCEPT (accepting_state)", lines[0])
	assert.Equal(t, "\"2\"\tREJECT (input_not_exhausted)", lines[2])
}

func TestRunner_InteractiveExit(t *testing.T) {
	eng := newMemoryEngine(t)

	var out bytes.Buffer
	r := pushdown.NewRunner()
	r.Input = strings.NewReader("(())\nexit\n()\n")
	r.Output = &out

	stats, err := r.Run(context.Background(), eng, "balanced")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Accepted)
	assert.Contains(t, out.String(), "Bye!")
	assert.NotContains(t, out.String(), "\"()\"")
}

func TestRunner_Failures(t *testing.T) {
	eng := newMemoryEngine(t, pushdown.WithStackCap(2))

	var out bytes.Buffer
	r := pushdown.NewRunner()
	r.Input = strings.NewReader("000#000\n")
	r.Output = &out
	r.Headless = true

	stats, err := r.Run(context.Background(), eng, "palindrome")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, "\"000#000\"\tERROR (stack_overflow)\n", out.String())
}

func TestRunner_CustomFormat(t *testing.T) {
	eng := newMemoryEngine(t)

	var out bytes.Buffer
	r := pushdown.NewRunner()
	r.Input = strings.NewReader("()\n")
	r.Output = &out
	r.Headless = true
	r.Format = func(res *domain.Result) string { return string(res.Verdict.Reason) }

	_, err := r.Run(context.Background(), eng, "balanced")
	require.NoError(t, err)
	assert.Equal(t, "empty_stack\n", out.String())
}

func TestRunner_RequiresIO(t *testing.T) {
	eng := newMemoryEngine(t)
	_, err := pushdown.NewRunner().Run(context.Background(), eng, "palindrome")
	assert.Error(t, err)
}
