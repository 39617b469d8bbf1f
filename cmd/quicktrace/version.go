package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/quicktrace"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of quicktrace",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quicktrace version %s\n", strings.TrimSpace(quicktrace.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
