package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/pushdown/pkg/adapters/memory"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactionMiddleware(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()

	mw, err := middleware.NewRedactionMiddleware([]string{`^1{3}`})
	require.NoError(t, err)
	store := mw(underlying)

	secret := &domain.Result{
		ID:      "secret",
		Input:   "111001#100111",
		Final:   domain.Snapshot{Step: 14, State: 2, Stack: "S", Head: 13},
		Trace:   []domain.Snapshot{{Stack: "S"}, {Step: 1, Stack: "S1", Head: 1}},
		Verdict: domain.Verdict{Accepted: true, Reason: domain.ReasonAcceptingState},
	}
	plain := &domain.Result{ID: "plain", Input: "0#0", Final: domain.Snapshot{Stack: "S"}}

	require.NoError(t, store.Save(ctx, secret))
	require.NoError(t, store.Save(ctx, plain))

	// The caller's result is untouched.
	assert.Equal(t, "111001#100111", secret.Input)
	assert.Len(t, secret.Trace, 2)

	masked, err := store.Load(ctx, "secret")
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, masked.Input)
	assert.Equal(t, middleware.Mask, masked.Final.Stack)
	assert.Empty(t, masked.Trace)
	assert.Equal(t, secret.Verdict, masked.Verdict)
	assert.Equal(t, 14, masked.Final.Step)

	kept, err := store.Load(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, "0#0", kept.Input)
}

func TestRedactionMiddleware_InvalidPattern(t *testing.T) {
	_, err := middleware.NewRedactionMiddleware([]string{"("})
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()

	redact, err := middleware.NewRedactionMiddleware([]string{"#"})
	require.NoError(t, err)
	key := make([]byte, 32)
	encrypt, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	require.NoError(t, err)

	// Redaction runs first, so the ciphertext only ever holds the masked run.
	store := middleware.Chain(underlying, redact, encrypt)
	require.NoError(t, store.Save(ctx, &domain.Result{ID: "r", Input: "0#0"}))

	raw, err := underlying.Load(ctx, "r")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Sealed)

	loaded, err := store.Load(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, loaded.Input)
}
