package pushdown_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/testutils"
	"github.com/aretw0/pushdown/pkg/adapters/memory"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryEngine(t *testing.T, opts ...pushdown.Option) *pushdown.Engine {
	t.Helper()
	loader, err := memory.NewLoader(testutils.Palindrome(), testutils.Balanced())
	require.NoError(t, err)

	eng, err := pushdown.New("", append([]pushdown.Option{pushdown.WithLoader(loader)}, opts...)...)
	require.NoError(t, err)
	return eng
}

func TestFacade_Integration(t *testing.T) {
	repoPath := t.TempDir()
	content := []byte(`---
id: anbn
initial_stack: "Z"
accepting: [2]
transitions:
  - { from_state: 0, from_input: "a", from_stack: "Z", to_state: 0, to_stack: "ZA" }
  - { from_state: 0, from_input: "a", from_stack: "A", to_state: 0, to_stack: "AA" }
  - { from_state: 0, from_input: "b", from_stack: "A", to_state: 1, to_stack: "" }
  - { from_state: 1, from_input: "b", from_stack: "A", to_state: 1, to_stack: "" }
  - { from_state: 1, from_stack: "Z", to_state: 2, to_stack: "Z" }
---
Equal runs of a and b.`)
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "anbn.md"), content, 0644))

	engine, err := pushdown.New(repoPath)
	require.NoError(t, err, "Failed to initialize engine with path %s", repoPath)

	ctx := context.Background()

	ids, err := engine.Definitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"anbn"}, ids)

	def, err := engine.Definition(ctx, "anbn")
	require.NoError(t, err)
	assert.Equal(t, "Equal runs of a and b.", def.Description)

	tests := []struct {
		input    string
		accepted bool
		reason   domain.Reason
	}{
		{"aabb", true, domain.ReasonAcceptingState},
		{"ab", true, domain.ReasonAcceptingState},
		{"aab", false, domain.ReasonNotAccepted},
		{"abb", false, domain.ReasonInputNotExhausted},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := engine.Run(ctx, "anbn", tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.accepted, result.Verdict.Accepted)
			assert.Equal(t, tt.reason, result.Verdict.Reason)
		})
	}
}

func TestNew_RequiresRepoPath(t *testing.T) {
	_, err := pushdown.New("")
	assert.Error(t, err)
}

func TestEngine_Run_Scenarios(t *testing.T) {
	eng := newMemoryEngine(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		id       string
		input    string
		accepted bool
		reason   domain.Reason
		final    domain.Snapshot
	}{
		{"Palindrome", "palindrome", "111001#100111", true, domain.ReasonAcceptingState, domain.Snapshot{Step: 14, State: 2, Stack: "S", Head: 13}},
		{"Centre only", "palindrome", "0#0", true, domain.ReasonAcceptingState, domain.Snapshot{Step: 4, State: 2, Stack: "S", Head: 3}},
		{"Unknown symbol", "palindrome", "2", false, domain.ReasonInputNotExhausted, domain.Snapshot{Step: 0, State: 0, Stack: "S", Head: 0}},
		{"Empty input", "palindrome", "", false, domain.ReasonNotAccepted, domain.Snapshot{Step: 0, State: 0, Stack: "S", Head: 0}},
		{"Balanced", "balanced", "(())()", true, domain.ReasonEmptyStack, domain.Snapshot{Step: 6, State: 1, Stack: "", Head: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := eng.Run(ctx, tt.id, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.accepted, result.Verdict.Accepted)
			assert.Equal(t, tt.reason, result.Verdict.Reason)
			assert.Equal(t, tt.final, result.Final)
			assert.Len(t, result.Trace, tt.final.Step+1)
			assert.NotEmpty(t, result.ID)
			assert.Equal(t, tt.id, result.DefinitionID)
		})
	}
}

func TestEngine_Run_NotFound(t *testing.T) {
	eng := newMemoryEngine(t)
	_, err := eng.Run(context.Background(), "missing", "x")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestEngine_StepLimit(t *testing.T) {
	spin := &domain.Definition{
		ID:           "spin",
		InitialStack: domain.Symbols("Z"),
		Transitions: []domain.Transition{
			{From: 0, Top: domain.Lit('Z'), To: 0, Push: domain.Symbols("Z")},
		},
	}
	loader, err := memory.NewLoader(spin)
	require.NoError(t, err)

	eng, err := pushdown.New("", pushdown.WithLoader(loader), pushdown.WithStepLimit(10))
	require.NoError(t, err)

	result, err := eng.Run(context.Background(), "spin", "")
	require.ErrorIs(t, err, domain.ErrStepLimitExceeded)
	require.NotNil(t, result)
	assert.Equal(t, "step_limit_exceeded", result.Failure)
	assert.True(t, result.Failed())
	assert.False(t, result.Verdict.Accepted)
	assert.Equal(t, 10, result.Final.Step)
}

func TestEngine_StackCapOverride(t *testing.T) {
	eng := newMemoryEngine(t, pushdown.WithStackCap(2))

	result, err := eng.Run(context.Background(), "palindrome", "00#00")
	require.ErrorIs(t, err, domain.ErrStackOverflow)
	assert.Equal(t, "stack_overflow", result.Failure)
	assert.Equal(t, "S0", result.Final.Stack)
}

func TestEngine_WithStore(t *testing.T) {
	store := memory.NewStore()
	eng := newMemoryEngine(t, pushdown.WithStore(store))
	ctx := context.Background()

	result, err := eng.Run(ctx, "palindrome", "1#1")
	require.NoError(t, err)

	saved, err := store.Load(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Verdict, saved.Verdict)
	assert.Equal(t, "1#1", saved.Input)
	assert.Same(t, store, eng.Store())
}

type brokenStore struct {
	*memory.Store
}

var errDiskFull = errors.New("disk full")

func (brokenStore) Save(context.Context, *domain.Result) error {
	return errDiskFull
}

func TestEngine_StoreFailure(t *testing.T) {
	eng := newMemoryEngine(t, pushdown.WithStore(brokenStore{memory.NewStore()}), pushdown.WithStackCap(2))
	ctx := context.Background()

	t.Run("Finished run", func(t *testing.T) {
		result, err := eng.Run(ctx, "palindrome", "1#1")
		require.NotNil(t, result)
		assert.ErrorIs(t, err, errDiskFull)
		assert.True(t, result.Verdict.Accepted)
	})

	t.Run("Aborted run keeps its failure", func(t *testing.T) {
		result, err := eng.Run(ctx, "palindrome", "00#00")
		require.NotNil(t, result)
		assert.ErrorIs(t, err, errDiskFull)
		assert.ErrorIs(t, err, domain.ErrStackOverflow)
		assert.Equal(t, "stack_overflow", result.Failure)
	})
}

func TestEngine_WithMetricsAndHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	var steps int
	hooks := domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) { steps++ },
	}

	eng := newMemoryEngine(t, pushdown.WithMetrics(metrics), pushdown.WithLifecycleHooks(hooks))

	_, err = eng.Run(context.Background(), "palindrome", "0#0")
	require.NoError(t, err)

	assert.Equal(t, 4, steps, "user hooks still fire next to the metrics hooks")
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Runs.WithLabelValues("palindrome", "accept", "accepting_state")))
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.Transitions.WithLabelValues("palindrome")))
}
