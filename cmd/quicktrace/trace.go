package main

import (
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Manage stored traces",
}

var traceListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List stored traces",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return app.ListTraces(cmd.Context(), cmd.OutOrStdout())
	},
}

var traceInspectCmd = &cobra.Command{
	Use:   "inspect <trace-id>",
	Short: "Print a stored trace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		jsonOut, _ := cmd.Flags().GetBool("json")
		return app.InspectTrace(cmd.Context(), args[0], jsonOut, cmd.OutOrStdout())
	},
}

var traceRemoveCmd = &cobra.Command{
	Use:     "rm <trace-id>...",
	Aliases: []string{"delete"},
	Short:   "Delete stored traces",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return app.RemoveTraces(cmd.Context(), args, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.AddCommand(traceListCmd, traceInspectCmd, traceRemoveCmd)
	traceInspectCmd.Flags().Bool("json", false, "Print the trace as JSON")
}
