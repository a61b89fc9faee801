package runner_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/testutils"
	"github.com/aretw0/pushdown/pkg/adapters/memory"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...pushdown.Option) *pushdown.Engine {
	t.Helper()
	loader, err := memory.NewLoader(testutils.Palindrome(), testutils.Balanced())
	require.NoError(t, err)

	eng, err := pushdown.New("", append([]pushdown.Option{pushdown.WithLoader(loader)}, opts...)...)
	require.NoError(t, err)
	return eng
}

func TestRunner_PreservesOrder(t *testing.T) {
	r := runner.NewRunner(newEngine(t), runner.WithConcurrency(8))

	var inputs []string
	for i := 0; i < 64; i++ {
		w := fmt.Sprintf("%b", i)
		inputs = append(inputs, w+"#"+reverse(w))
	}
	inputs = append(inputs, "01#01")

	items, err := r.Run(context.Background(), "palindrome", inputs)
	require.NoError(t, err)
	require.Len(t, items, len(inputs))

	for i, item := range items {
		require.NoError(t, item.Err)
		assert.Equal(t, inputs[i], item.Input)
		assert.Equal(t, inputs[i], item.Result.Input, "results are returned in input order")
	}

	assert.Equal(t, runner.Summary{Total: 65, Accepted: 64, Rejected: 1}, runner.Summarize(items))
}

func TestRunner_PerInputFailures(t *testing.T) {
	r := runner.NewRunner(newEngine(t, pushdown.WithStackCap(3)), runner.WithConcurrency(2))

	items, err := r.Run(context.Background(), "palindrome", []string{"0#0", "0000#0000", "1#1"})
	require.NoError(t, err, "an aborted run does not fail the batch")

	assert.NoError(t, items[0].Err)
	assert.ErrorIs(t, items[1].Err, domain.ErrStackOverflow)
	require.NotNil(t, items[1].Result)
	assert.Equal(t, "stack_overflow", items[1].Result.Failure)
	assert.NoError(t, items[2].Err)

	assert.Equal(t, runner.Summary{Total: 3, Accepted: 2, Failed: 1}, runner.Summarize(items))
}

func TestRunner_FailFast(t *testing.T) {
	r := runner.NewRunner(newEngine(t, pushdown.WithStackCap(3)),
		runner.WithConcurrency(1),
		runner.WithFailFast(true),
	)

	items, err := r.Run(context.Background(), "palindrome", []string{"0000#0000", "0#0", "1#1"})
	require.ErrorIs(t, err, domain.ErrStackOverflow)
	require.Len(t, items, 3)
	assert.ErrorIs(t, items[0].Err, domain.ErrStackOverflow)
	for _, item := range items[1:] {
		assert.Error(t, item.Err, "inputs after the abort are skipped")
		assert.Nil(t, item.Result)
	}
}

func TestRunner_UnknownAutomaton(t *testing.T) {
	r := runner.NewRunner(newEngine(t))
	_, err := r.Run(context.Background(), "missing", []string{"x"})
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestRunner_Canceled(t *testing.T) {
	r := runner.NewRunner(newEngine(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, "balanced", []string{strings.Repeat("()", 10)})
	assert.ErrorIs(t, err, context.Canceled)
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
