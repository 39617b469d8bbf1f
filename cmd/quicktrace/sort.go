package main

import (
	"github.com/aretw0/quicktrace/internal/cli"
	"github.com/spf13/cobra"
)

var sortCmd = &cobra.Command{
	Use:   "sort [values...]",
	Short: "Sort an array and print the trace summary",
	Long: `Sorts the given values (positional, --input, or a random array) with the
traced quicksort. Use --steps to print the step log, --json for machine output
and --save to persist the trace for later replay.`,
	Example: `  quicktrace sort 5 2 8
  quicktrace sort --input "38, 27, 43, 3, 9" --steps
  quicktrace sort --random --count 12 --save`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		values, err := app.Resolve(inputSource(cmd, app, args))
		if err != nil {
			return err
		}

		jsonOut, _ := cmd.Flags().GetBool("json")
		steps, _ := cmd.Flags().GetBool("steps")
		save, _ := cmd.Flags().GetBool("save")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		return app.RunSort(sigCtx, values, cli.SortOptions{JSON: jsonOut, Steps: steps, Save: save}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
	addInputFlags(sortCmd)
	sortCmd.Flags().Bool("json", false, "Print the report (or saved trace) as JSON")
	sortCmd.Flags().Bool("steps", false, "Print every recorded step")
	sortCmd.Flags().Bool("save", false, "Persist the trace in the configured store")
}
