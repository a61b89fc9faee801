package main

import (
	"fmt"
	"os"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [input...]",
	Short: "Run an automaton over one or more inputs",
	Long: `Runs an automaton and prints its verdict.

With one input the exit code is 0 on accept, 1 on reject and 2 on error.
With several inputs they run in parallel and the worst outcome decides the exit code.
Without inputs, one input per line is read from standard input.`,
	Run: func(cmd *cobra.Command, args []string) {
		automaton, _ := cmd.Flags().GetString("automaton")
		trace, _ := cmd.Flags().GetBool("trace")
		jsonMode, _ := cmd.Flags().GetBool("json")
		report, _ := cmd.Flags().GetBool("report")
		headless, _ := cmd.Flags().GetBool("headless")
		storeDir, _ := cmd.Flags().GetString("store")
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		if jsonMode && report {
			fmt.Fprintln(os.Stderr, "Error: --json and --report cannot be used together.")
			os.Exit(cli.ExitError)
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		code, err := cli.Execute(sigCtx, cli.RunOptions{
			EngineOptions: engineOptions(cmd),
			Automaton:     automaton,
			Inputs:        args,
			Trace:         trace,
			JSON:          jsonMode,
			Report:        report,
			Headless:      headless,
			StoreDir:      storeDir,
			Concurrency:   concurrency,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(code)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("automaton", "a", "", "Automaton ID (optional when only one is available)")
	runCmd.Flags().BoolP("trace", "t", false, "Print every configuration of the run")
	runCmd.Flags().Bool("json", false, "Print results as JSON (NDJSON for several inputs)")
	runCmd.Flags().Bool("report", false, "Render a Markdown report of the run")
	runCmd.Flags().Bool("headless", false, "Read inputs without banner or prompts")
	runCmd.Flags().String("store", "", "Persist every run as JSON under this directory")
	runCmd.Flags().IntP("concurrency", "c", 4, "Parallel runs when several inputs are given")
}
