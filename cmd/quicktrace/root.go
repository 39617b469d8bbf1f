package main

import (
	"fmt"
	"os"

	"github.com/aretw0/quicktrace/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quicktrace",
	Short: "QuickTrace records and replays quicksort step by step",
	Long: `QuickTrace sorts small integer arrays with a traced quicksort and records
every comparison, swap and partition as a replayable step log.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default quicktrace.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("store", "", "Trace store backend: memory, file or redis")
	rootCmd.PersistentFlags().String("dir", "", "Directory of the file trace store")
}

// bootstrap builds the application from the persistent flags.
func bootstrap(cmd *cobra.Command) (*cli.App, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	logLevel, _ := flags.GetString("log-level")
	store, _ := flags.GetString("store")
	dir, _ := flags.GetString("dir")

	return cli.Bootstrap(cli.Options{
		ConfigPath: configPath,
		LogLevel:   logLevel,
		Store:      store,
		Dir:        dir,
	})
}

// addInputFlags registers the flags describing the array to sort.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Comma-separated integers, e.g. \"5, 2, 8\"")
	cmd.Flags().Bool("random", false, "Sort a random array (the default when no input is given)")
	cmd.Flags().Int("count", 0, "Length of the random array (default from config)")
	cmd.Flags().Int("min", 0, "Smallest random value (default from config)")
	cmd.Flags().Int("max", 0, "Largest random value (default from config)")
}

// inputSource reads the input flags, filling unset random bounds from config.
func inputSource(cmd *cobra.Command, app *cli.App, args []string) cli.InputSource {
	flags := cmd.Flags()
	src := cli.InputSource{
		Values: args,
		Count:  app.Config.Random.Count,
		Min:    app.Config.Random.Min,
		Max:    app.Config.Random.Max,
	}

	if random, _ := flags.GetBool("random"); !random {
		src.Text, _ = flags.GetString("input")
	} else {
		src.Values = nil
	}
	if flags.Changed("count") {
		src.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("min") {
		src.Min, _ = flags.GetInt("min")
	}
	if flags.Changed("max") {
		src.Max, _ = flags.GetInt("max")
	}
	return src
}
