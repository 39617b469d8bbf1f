package main

import (
	"github.com/aretw0/quicktrace/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [trace-id]",
	Short: "Export the partition tree visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the partitions performed by a stored
trace, or by a fresh sort when no ID is given. --step highlights the partitions
finished and in progress at that step.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		report, err := app.LoadReport(cmd.Context(), id, inputSource(cmd, app, nil))
		if err != nil {
			return err
		}

		step := -1
		if cmd.Flags().Changed("step") {
			n, _ := cmd.Flags().GetInt("step")
			// Steps are shown one-based.
			step = n - 1
		}
		cli.WriteGraph(cmd.OutOrStdout(), report, step)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addInputFlags(graphCmd)
	graphCmd.Flags().Int("step", 0, "Highlight progress at this step (one-based)")
}
