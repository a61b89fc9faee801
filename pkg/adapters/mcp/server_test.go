package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/testutils"
	"github.com/aretw0/pushdown/pkg/adapters/memory"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...pushdown.Option) *Server {
	t.Helper()
	loader, err := memory.NewLoader(testutils.Palindrome(), testutils.Balanced())
	require.NoError(t, err)

	eng, err := pushdown.New("", append([]pushdown.Option{pushdown.WithLoader(loader)}, opts...)...)
	require.NoError(t, err)
	return NewServer(eng, nil)
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestListAutomata(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleList(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var ids []string
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &ids))
	assert.Equal(t, []string{"balanced", "palindrome"}, ids)
}

func TestDescribeAutomaton(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleDescribe(context.Background(), callRequest(map[string]any{"id": "palindrome"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	text := textOf(t, res)
	assert.Contains(t, text, `"id": "palindrome"`)
	assert.Contains(t, text, "stateDiagram-v2")

	res, err = s.handleDescribe(context.Background(), callRequest(map[string]any{"id": "missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestRunAutomaton(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	out, err := s.handleRun(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"id":    "palindrome",
		"input": "111001#100111",
		"trace": true,
	})
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, "accepting_state", out.Reason)
	assert.Equal(t, "S", out.Final.Stack)
	assert.Len(t, out.Trace, 15)
	assert.NotEmpty(t, out.RunID)

	out, err = s.handleRun(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"id":    "palindrome",
		"input": "2",
	})
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Equal(t, "input_not_exhausted", out.Reason)
	assert.Empty(t, out.Trace)
}

func TestRunAutomaton_Errors(t *testing.T) {
	s := newTestServer(t, pushdown.WithStackCap(2))
	ctx := context.Background()

	_, err := s.handleRun(ctx, mcp.CallToolRequest{}, map[string]interface{}{"id": "missing", "input": "0"})
	assert.Error(t, err)

	_, err = s.handleRun(ctx, mcp.CallToolRequest{}, map[string]interface{}{"id": "palindrome", "input": "\x1b[0m"})
	assert.ErrorContains(t, err, "input rejected")

	out, err := s.handleRun(ctx, mcp.CallToolRequest{}, map[string]interface{}{"id": "palindrome", "input": "000#000"})
	require.NoError(t, err, "an aborted run is reported in the output")
	assert.Equal(t, "stack_overflow", out.Failure)
	assert.True(t, strings.Contains(out.Error, "stack overflow"))
}
