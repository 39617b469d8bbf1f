package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/quicktrace/internal/presentation/tui"
	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/aretw0/quicktrace/pkg/replay"
	"github.com/muesli/termenv"
)

const playPrompt = "[n]ext [p]rev [r]eset [g]oto <step> [a]uto [q]uit > "

// PlayOptions controls the interactive replay.
type PlayOptions struct {
	// Auto plays every step on a timer and returns.
	Auto  bool
	Speed time.Duration
	// Profile colors the bars. Zero value is termenv.TrueColor, so callers
	// should set it explicitly (termenv.Ascii for plain text).
	Profile termenv.Profile
	// Markdown renders the step panel. Nil prints the raw markdown.
	Markdown func(string) (string, error)
}

// RunPlay replays report on out, reading commands line by line from in.
// It returns nil on quit or end of input.
func (a *App) RunPlay(ctx context.Context, report *domain.SortReport, opts PlayOptions, in io.Reader, out io.Writer) error {
	speed := opts.Speed
	if speed <= 0 {
		speed = a.Config.Playback.Speed
	}
	player := replay.NewPlayer(report, replay.WithSpeed(speed))
	if player.Len() == 0 {
		return fmt.Errorf("nothing to play: the trace has no steps")
	}

	v := &viewer{
		bars:     tui.NewBarRenderer(opts.Profile, report),
		markdown: opts.Markdown,
		total:    player.Len(),
		out:      out,
	}

	step, _ := player.Current()
	v.show(player.Index(), step)

	if opts.Auto {
		return player.Play(ctx, v.show)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, playPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := strings.Fields(scanner.Text())
		cmd := ""
		if len(fields) > 0 {
			cmd = strings.ToLower(fields[0])
		}

		switch cmd {
		case "", "n", "next":
			if !player.Next() {
				printSystemMessage(out, "Already at the last step.")
				continue
			}
		case "p", "prev":
			if !player.Prev() {
				printSystemMessage(out, "Already at the first step.")
				continue
			}
		case "r", "reset":
			player.Reset()
		case "g", "goto":
			if len(fields) < 2 {
				printSystemMessage(out, "Usage: g <step>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				printSystemMessage(out, "Not a step number: %q", fields[1])
				continue
			}
			// Steps are shown one-based.
			if err := player.Seek(n - 1); err != nil {
				printSystemMessage(out, "Step %d does not exist (1..%d).", n, player.Len())
				continue
			}
		case "a", "auto":
			if err := player.Play(ctx, v.show); err != nil {
				return err
			}
			continue
		case "q", "quit", "exit":
			return nil
		default:
			printSystemMessage(out, "Unknown command %q.", cmd)
			continue
		}

		step, _ := player.Current()
		v.show(player.Index(), step)
	}
}

// viewer prints one frame per step.
type viewer struct {
	bars     *tui.BarRenderer
	markdown func(string) (string, error)
	total    int
	out      io.Writer
}

func (v *viewer) show(index int, step domain.Step) {
	fmt.Fprintln(v.out)
	fmt.Fprint(v.out, v.bars.Render(step))

	panel := tui.StepMarkdown(step, index, v.total)
	if v.markdown != nil {
		if rendered, err := v.markdown(panel); err == nil {
			panel = rendered
		}
	}
	fmt.Fprintln(v.out, panel)
}
