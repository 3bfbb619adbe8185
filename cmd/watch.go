package cmd

import (
	"log/slog"
	"time"

	"github.com/mj1618/axwatch/internal/launch"
	"github.com/mj1618/axwatch/internal/output"
	"github.com/mj1618/axwatch/internal/platform"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Register an accessibility observer and print every notification it receives",
	Long: `Check accessibility permission, find the last running application with the given
bundle identifier (Finder by default), and register an observer for one notification
(window moved by default).

Prints "registered for <handle>" once the observer is registered, then
"<element> received notification." for every notification delivered.

A missing permission is reported as a warning and the observer is still attempted.
A missing application is logged; nothing is registered and axwatch keeps running
until Ctrl+C or --duration.

With --format json or yaml, events are streamed as JSONL or YAML documents.

Examples:
  axwatch watch
  axwatch watch --notification window-resized --duration 30
  axwatch watch --bundle-id com.apple.Safari --format json`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addTargetFlags(watchCmd)
	watchCmd.Flags().Int("duration", 0, "Max seconds to watch (0 = until Ctrl+C)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := parseTargetFlags(cmd)
	if err != nil {
		return err
	}
	durationSec, _ := cmd.Flags().GetInt("duration")

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	ew := output.NewEventWriter(cmd.OutOrStdout(), output.OutputFormat)
	defer ew.Close()
	sink := launch.MultiSink{ew, desktopSink(opts.desktopNotify)}

	ctx, cancel := signalContext(cmd.Context(), time.Duration(durationSec)*time.Second)
	defer cancel()

	loop := newMainLoop(provider)
	scheduleShell(loop, provider, opts.uiMode)
	sessions := launch.New(provider, opts.launch, sink).Schedule(loop)

	start := time.Now()
	loop.Run(ctx)

	// Run drains queued work before returning, so the session is ready.
	sess := <-sessions
	if err := sess.Close(); err != nil {
		slog.Warn("teardown", "error", err)
	}
	res := sess.Result()
	slog.Info("watch finished",
		"outcome", res.Outcome.String(),
		"received", sess.Received(),
		"elapsed", time.Since(start).Round(100*time.Millisecond).String())
	return nil
}
