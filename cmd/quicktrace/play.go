package main

import (
	"os"

	"github.com/aretw0/quicktrace/internal/cli"
	"github.com/aretw0/quicktrace/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [trace-id]",
	Short: "Replay a trace step by step in the terminal",
	Long: `Replays a stored trace, or traces a fresh array when no ID is given.

Commands at the prompt:
  n (or Enter)  next step
  p             previous step
  r             back to the first step
  g <step>      jump to a step
  a             autoplay to the end
  q             quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		report, err := app.LoadReport(sigCtx, id, inputSource(cmd, app, nil))
		if err != nil {
			return err
		}

		auto, _ := cmd.Flags().GetBool("auto")
		speed, _ := cmd.Flags().GetDuration("speed")

		out := cmd.OutOrStdout()
		opts := cli.PlayOptions{
			Auto:    auto,
			Speed:   speed,
			Profile: tui.ProfileFor(out),
		}
		if tui.IsTerminal(out) {
			tui.PrintBanner(out)
			if render, err := tui.NewRenderer(tui.StyleAuto); err == nil {
				opts.Markdown = render
			}
		}

		err = app.RunPlay(sigCtx, report, opts, os.Stdin, out)
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	addInputFlags(playCmd)
	playCmd.Flags().Bool("auto", false, "Play every step on a timer and exit")
	playCmd.Flags().Duration("speed", 0, "Autoplay interval (default from config)")
}
