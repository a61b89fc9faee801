package main

import (
	"fmt"
	"os"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the pushdown engine in server mode, exposing automata and runs as a JSON API over HTTP.
Runs are stored under --store, or in Redis when --redis (or ` + cli.RedisAddrEnv + `) is set.
Stored runs are encrypted with AES-256-GCM when ` + cli.StoreKeyEnv + ` holds a base64 32-byte key.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		redisTTL, _ := cmd.Flags().GetDuration("redis-ttl")
		storeDir, _ := cmd.Flags().GetString("store")
		redact, _ := cmd.Flags().GetStringArray("redact")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		err := cli.Serve(sigCtx, cli.ServeOptions{
			EngineOptions: engineOptions(cmd),
			Port:          port,
			RedisAddr:     redisAddr,
			RedisTTL:      redisTTL,
			StoreDir:      storeDir,
			Redact:        redact,
		})
		if err != nil {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the run store (host:port)")
	serveCmd.Flags().Duration("redis-ttl", 0, "Expire stored runs after this long (Redis only)")
	serveCmd.Flags().StringArray("redact", nil, "Mask stored runs whose input matches this regular expression (repeatable)")
	serveCmd.Flags().String("store", "", "Directory for stored runs when Redis is not used (default .pushdown/runs)")
}
