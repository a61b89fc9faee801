package main

import (
	"fmt"
	"os"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the state diagram of an automaton",
	Long: `Outputs a Mermaid diagram (stateDiagram-v2) of the automaton.
With --input the run is executed first and the visited states are highlighted.`,
	Run: func(cmd *cobra.Command, args []string) {
		automaton, _ := cmd.Flags().GetString("automaton")

		opts := cli.GraphOptions{
			EngineOptions: engineOptions(cmd),
			Automaton:     automaton,
			Out:           os.Stdout,
		}
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			opts.Input = &input
		}

		if err := cli.Graph(cmd.Context(), opts); err != nil {
			fmt.Printf("Error generating graph: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("automaton", "a", "", "Automaton ID (optional when only one is available)")
	graphCmd.Flags().StringP("input", "i", "", "Highlight the states visited while running this input")
}
