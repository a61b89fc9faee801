package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the pushdown engine as an MCP Server, so agents can list, describe and run automata as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP when --port is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		err := cli.ServeMCP(sigCtx, cli.MCPOptions{
			EngineOptions: engineOptions(cmd),
			Port:          port,
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("MCP Server execution failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Int("port", 0, "Serve over SSE on this port instead of stdio")
}
