package observability_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/pushdown/internal/runtime"
	"github.com/aretw0/pushdown/internal/testutils"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	eng := runtime.NewEngine(runtime.WithLifecycleHooks(m.Hooks()))
	def := testutils.Palindrome()

	_, _, err = eng.Run(context.Background(), def, "0#0")
	require.NoError(t, err)

	// 0 (push), # (mark), 0 (pop), ε (accept)
	assert.Equal(t, float64(4), testutil.ToFloat64(m.Transitions.WithLabelValues("palindrome")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.InFlight.WithLabelValues("palindrome")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Steps))
	assert.Equal(t, 0, testutil.CollectAndCount(m.Failures))
}

func TestMetrics_Failures(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	eng := runtime.NewEngine(runtime.WithLifecycleHooks(m.Hooks()), runtime.WithStackCap(2))

	_, _, err = eng.Run(context.Background(), testutils.Palindrome(), "0000#0000")
	require.ErrorIs(t, err, domain.ErrStackOverflow)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Failures.WithLabelValues("palindrome", "stack_overflow")))
}

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	m.Observe(&domain.Result{DefinitionID: "p", Verdict: domain.Verdict{Accepted: true, Reason: domain.ReasonAcceptingState}})
	m.Observe(&domain.Result{DefinitionID: "p", Verdict: domain.Verdict{Reason: domain.ReasonInputNotExhausted}})
	m.Observe(&domain.Result{DefinitionID: "p", Failure: "step_limit_exceeded"})

	expected := `
# HELP pushdown_runs_total Finished runs by verdict and reason.
# TYPE pushdown_runs_total counter
pushdown_runs_total{automaton="p",reason="accepting_state",verdict="accept"} 1
pushdown_runs_total{automaton="p",reason="input_not_exhausted",verdict="reject"} 1
pushdown_runs_total{automaton="p",reason="step_limit_exceeded",verdict="error"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "pushdown_runs_total"))
}

func TestNewMetrics_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err, "collectors are registered once per registry")
}
