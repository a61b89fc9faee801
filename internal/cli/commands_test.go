package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/pushdown/internal/testutils"
	httpAdapter "github.com/aretw0/pushdown/pkg/adapters/http"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shadowedMarkdown = `---
id: shadowed
accepting: [1]
transitions:
  - { from_state: 0, from_stack: "Z", to_state: 1, to_stack: "Z" }
  - { from_state: 0, from_input: "a", from_stack: "Z", to_state: 0, to_stack: "Z" }
initial_stack: "Z"
---
`

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("Clean file", func(t *testing.T) {
		var out bytes.Buffer
		err := Validate(ctx, ValidateOptions{EngineOptions: fileOptions(t), Out: &out})
		require.NoError(t, err)
		assert.Equal(t, "✓ palindrome (3 states, 11 transitions)\n", out.String())
	})

	t.Run("Findings are warnings", func(t *testing.T) {
		dir := t.TempDir()
		testutils.WriteFile(t, dir, "shadowed.md", shadowedMarkdown)

		var out bytes.Buffer
		err := Validate(ctx, ValidateOptions{EngineOptions: EngineOptions{RepoPath: dir}, Out: &out})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "! shadowed")
		assert.Contains(t, out.String(), "transition 1 is shadowed")
	})

	t.Run("Strict mode fails on findings", func(t *testing.T) {
		dir := t.TempDir()
		testutils.WriteFile(t, dir, "shadowed.md", shadowedMarkdown)

		var out bytes.Buffer
		err := Validate(ctx, ValidateOptions{EngineOptions: EngineOptions{RepoPath: dir}, Strict: true, Out: &out})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "found 1 issues")
	})

	t.Run("Malformed file", func(t *testing.T) {
		path := testutils.WriteFile(t, t.TempDir(), "bad.yaml", "id: bad\ninitial_state: 99\n")
		err := Validate(ctx, ValidateOptions{EngineOptions: EngineOptions{File: path}, Out: io.Discard})
		require.Error(t, err)
	})
}

func TestGraph(t *testing.T) {
	ctx := context.Background()

	var plain bytes.Buffer
	require.NoError(t, Graph(ctx, GraphOptions{EngineOptions: fileOptions(t), Out: &plain}))
	assert.True(t, strings.HasPrefix(plain.String(), "stateDiagram-v2\n"))
	assert.Contains(t, plain.String(), "[*] --> q0")
	assert.NotContains(t, plain.String(), "class q2 current")

	input := "0#0"
	var overlay bytes.Buffer
	require.NoError(t, Graph(ctx, GraphOptions{EngineOptions: fileOptions(t), Input: &input, Out: &overlay}))
	assert.Contains(t, overlay.String(), "class q2 current")
	assert.NotEqual(t, plain.String(), overlay.String())
}

func TestNewServerHandler_FileStore(t *testing.T) {
	ctx := context.Background()
	handler, cleanup, err := NewServerHandler(ctx, ServeOptions{
		EngineOptions: fileOptions(t),
		StoreDir:      t.TempDir(),
	}, createLogger(false))
	require.NoError(t, err)
	defer cleanup()

	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/automata/palindrome/runs", "application/json", strings.NewReader(`{"input":"0#0"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var run httpAdapter.RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	require.NotNil(t, run.Result)
	assert.True(t, run.Verdict.Accepted)

	stored, err := http.Get(srv.URL + "/runs/" + run.ID)
	require.NoError(t, err)
	defer stored.Body.Close()
	assert.Equal(t, http.StatusOK, stored.StatusCode)

	metrics, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `pushdown_runs_total{automaton="palindrome",reason="accepting_state",verdict="accept"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNewServerHandler_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	handler, cleanup, err := NewServerHandler(context.Background(), ServeOptions{
		EngineOptions: fileOptions(t),
		RedisAddr:     mr.Addr(),
	}, createLogger(false))
	require.NoError(t, err)
	defer cleanup()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/automata/palindrome/runs", strings.NewReader(`{"input":"1#1"}`))
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	keys := mr.Keys()
	assert.Contains(t, keys, "pushdown:run:index")
	assert.Len(t, keys, 2)
}

func TestNewServerHandler_RedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, _, err = NewServerHandler(context.Background(), ServeOptions{
		EngineOptions: fileOptions(t),
		RedisAddr:     addr,
	}, createLogger(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestServe_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opts := ServeOptions{
		EngineOptions: fileOptions(t),
		Port:          "0",
		StoreDir:      t.TempDir(),
	}

	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, opts)
	}()

	cancel()
	assert.NoError(t, <-done)
}

func TestNewServerHandler_SealedStore(t *testing.T) {
	storeDir := t.TempDir()
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))

	handler, cleanup, err := NewServerHandler(context.Background(), ServeOptions{
		EngineOptions: fileOptions(t),
		StoreDir:      storeDir,
		StoreKey:      key,
		Redact:        []string{"^1"},
	}, createLogger(false))
	require.NoError(t, err)
	defer cleanup()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/automata/palindrome/runs", strings.NewReader(`{"input":"1#1"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var run httpAdapter.RunResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&run))
	assert.Equal(t, "1#1", run.Input, "Redaction only applies to the stored copy")

	raw, err := os.ReadFile(filepath.Join(storeDir, run.ID+".json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "1#1")
	assert.Contains(t, string(raw), `"sealed"`)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+run.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored domain.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stored))
	assert.Equal(t, "***", stored.Input)
	assert.True(t, stored.Verdict.Accepted)
}

func TestNewServerHandler_InvalidStoreKey(t *testing.T) {
	_, _, err := NewServerHandler(context.Background(), ServeOptions{
		EngineOptions: fileOptions(t),
		StoreDir:      t.TempDir(),
		StoreKey:      base64.StdEncoding.EncodeToString([]byte("short")),
	}, createLogger(false))
	assert.ErrorContains(t, err, "invalid store key")
}
