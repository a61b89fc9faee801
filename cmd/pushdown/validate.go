package main

import (
	"fmt"
	"os"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check definitions for errors",
	Long: `Loads every definition and reports structural errors, then crawls each
transition graph for unreachable states, shadowed transitions and symbols
missing from the declared alphabets.`,
	Run: func(cmd *cobra.Command, args []string) {
		strict, _ := cmd.Flags().GetBool("strict")

		err := cli.Validate(cmd.Context(), cli.ValidateOptions{
			EngineOptions: engineOptions(cmd),
			Strict:        strict,
			Out:           os.Stdout,
		})
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Definitions are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat findings as errors")
}
