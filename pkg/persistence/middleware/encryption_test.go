package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/pushdown/pkg/adapters/memory"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/persistence/middleware"
	"github.com/aretw0/pushdown/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func newSecureStore(t *testing.T, config middleware.EncryptionConfig) (ports.RunStore, *memory.Store) {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(config)
	if err != nil {
		t.Fatalf("NewEncryptionMiddleware failed: %v", err)
	}
	underlying := memory.NewStore()
	return mw(underlying), underlying
}

func secretRun() *domain.Result {
	return &domain.Result{
		ID:           "run-1",
		DefinitionID: "palindrome",
		Input:        "110#011",
		Final:        domain.Snapshot{Step: 8, State: 2, Stack: "S", Head: 7},
		Verdict:      domain.Verdict{Accepted: true, Reason: domain.ReasonAcceptingState},
	}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	store, _ := newSecureStore(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunStoreContract(t, store)
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	secureStore, underlyingStore := newSecureStore(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ctx := context.Background()

	// 1. Save
	if err := secureStore.Save(ctx, secretRun()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Verify Underlying Store directly (Should be encrypted)
	stored, err := underlyingStore.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if stored.Input != "" || stored.Final.Stack != "" || stored.Verdict.Accepted {
		t.Fatalf("Expected run details to be hidden, found: %+v", stored)
	}
	if stored.Sealed == "" {
		t.Fatal("Expected sealed payload in envelope")
	}
	if stored.DefinitionID != "palindrome" {
		t.Errorf("Expected definition ID to stay readable, got %q", stored.DefinitionID)
	}

	// 3. Load via Middleware (Should be decrypted)
	loaded, err := secureStore.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loaded.Input != "110#011" {
		t.Errorf("Expected '110#011', got %v", loaded.Input)
	}
	if loaded.Sealed != "" {
		t.Errorf("Expected decrypted run without envelope, got %q", loaded.Sealed)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	underlying := memory.NewStore()

	// 1. Save with the old key
	oldMW, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})
	if err != nil {
		t.Fatal(err)
	}
	if err := oldMW(underlying).Save(ctx, secretRun()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Without the fallback the run cannot be read
	strictMW, _ := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})
	if _, err := strictMW(underlying).Load(ctx, "run-1"); err == nil {
		t.Fatal("Expected decryption to fail without the old key")
	}

	// 3. With the old key as fallback it can
	rotatedMW, _ := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	loaded, err := rotatedMW(underlying).Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Load with fallback key failed: %v", err)
	}
	if loaded.Input != "110#011" {
		t.Errorf("Expected '110#011', got %v", loaded.Input)
	}
}

func TestEncryptionMiddleware_FailSecure(t *testing.T) {
	secureStore, underlying := newSecureStore(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ctx := context.Background()

	// A plain result written behind the middleware's back must not be served.
	if err := underlying.Save(ctx, secretRun()); err != nil {
		t.Fatal(err)
	}
	_, err := secureStore.Load(ctx, "run-1")
	if err == nil || !strings.Contains(err.Error(), "encrypted envelope") {
		t.Fatalf("Expected envelope error, got %v", err)
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	if err != middleware.ErrInvalidKey {
		t.Fatalf("Expected ErrInvalidKey, got %v", err)
	}
}
