package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/dto"
	"github.com/aretw0/pushdown/internal/presentation/graph"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/aretw0/pushdown/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RunOutput is the structured result of run_automaton.
type RunOutput struct {
	RunID    string            `json:"run_id" jsonschema_description:"Identifier of the run"`
	Accepted bool              `json:"accepted" jsonschema_description:"Whether the input was accepted"`
	Reason   string            `json:"reason,omitempty" jsonschema_description:"Why the input was accepted or rejected"`
	Failure  string            `json:"failure,omitempty" jsonschema_description:"Failure kind when the run aborted (stack_overflow, step_limit_exceeded)"`
	Error    string            `json:"error,omitempty" jsonschema_description:"Error message when the run aborted"`
	Final    domain.Snapshot   `json:"final" jsonschema_description:"Configuration the run halted in"`
	Trace    []domain.Snapshot `json:"trace,omitempty" jsonschema_description:"One snapshot per applied transition, when requested"`
}

// Server wraps an Executor and exposes it as an MCP Server.
type Server struct {
	exec      ports.Executor
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(exec ports.Executor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		exec:      exec,
		logger:    logger,
		mcpServer: server.NewMCPServer("pushdown-mcp", strings.TrimSpace(pushdown.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_automata
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the IDs of every automaton available to run."),
	), s.handleList)

	// TOOL: describe_automaton
	s.mcpServer.AddTool(mcp.NewTool("describe_automaton",
		mcp.WithDescription("Return the transition table of an automaton, plus a Mermaid state diagram."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Automaton ID")),
	), s.handleDescribe)

	// TOOL: run_automaton
	runTool := mcp.NewTool("run_automaton",
		mcp.WithDescription("Run an automaton over an input string and report whether it is accepted."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Automaton ID")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input word; every character is one tape symbol")),
		mcp.WithBoolean("trace", mcp.Description("Include one snapshot per applied transition")),
		mcp.WithOutputSchema[RunOutput](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.exec.Definitions(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(ids)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := request.GetArguments()["id"].(string)

	def, err := s.exec.Definition(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("describe failed: %v", err)), nil
	}

	jsonBytes, _ := json.MarshalIndent(dto.FromDomain(def), "", "  ")
	return mcp.NewToolResultText(string(jsonBytes) + "\n\n" + graph.GenerateMermaid(def, nil)), nil
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunOutput, error) {
	id, _ := args["id"].(string)
	input, _ := args["input"].(string)
	withTrace, _ := args["trace"].(bool)

	if err := runner.ValidateInput(input); err != nil {
		s.logger.Warn("MCP run: Input rejected", "error", err, "size", len(input))
		return RunOutput{}, fmt.Errorf("input rejected: %w", err)
	}

	result, err := s.exec.Run(ctx, id, input)
	if result == nil {
		return RunOutput{}, fmt.Errorf("run failed: %w", err)
	}

	out := RunOutput{
		RunID:    result.ID,
		Accepted: result.Verdict.Accepted,
		Reason:   string(result.Verdict.Reason),
		Failure:  result.Failure,
		Final:    result.Final,
	}
	if withTrace {
		out.Trace = result.Trace
	}
	if err != nil {
		// An aborted run is still a result the caller can inspect.
		out.Error = err.Error()
		if !errors.Is(err, domain.ErrStackOverflow) && !errors.Is(err, domain.ErrStepLimitExceeded) {
			s.logger.Error("MCP run aborted", "automaton", id, "error", err)
		}
	}
	return out, nil
}

func (s *Server) registerResources() {
	// EXPOSE: pushdown://automata
	s.mcpServer.AddResource(mcp.NewResource("pushdown://automata", "Available automata",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.exec.Definitions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list automata: %w", err)
		}

		records := make([]*dto.DefinitionRecord, 0, len(ids))
		for _, id := range ids {
			def, err := s.exec.Definition(ctx, id)
			if err != nil {
				return nil, err
			}
			records = append(records, dto.FromDomain(def))
		}
		jsonBytes, _ := json.Marshal(records)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "pushdown://automata",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
