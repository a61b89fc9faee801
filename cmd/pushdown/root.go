package main

import (
	"fmt"
	"os"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pushdown",
	Short: "pushdown runs deterministic pushdown automata",
	Long: `pushdown loads deterministic pushdown automata from declarative files
and decides whether input strings are accepted, by final state or by empty stack.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing automaton definitions")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Single definition file (overrides --dir)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every step to stderr")
	rootCmd.PersistentFlags().Int("max-steps", cli.DefaultMaxSteps, "Abort runs after this many transitions (0 disables)")
	rootCmd.PersistentFlags().Int("stack-cap", 0, "Override the stack capacity of every definition")
}

// engineOptions reads the persistent flags shared by every command.
func engineOptions(cmd *cobra.Command) cli.EngineOptions {
	dir, _ := cmd.Flags().GetString("dir")
	file, _ := cmd.Flags().GetString("file")
	debug, _ := cmd.Flags().GetBool("debug")
	maxSteps, _ := cmd.Flags().GetInt("max-steps")
	stackCap, _ := cmd.Flags().GetInt("stack-cap")

	return cli.EngineOptions{
		RepoPath: dir,
		File:     file,
		Debug:    debug,
		MaxSteps: maxSteps,
		StackCap: stackCap,
	}
}
