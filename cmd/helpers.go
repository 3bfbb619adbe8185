package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mj1618/axwatch/internal/envconfig"
	"github.com/mj1618/axwatch/internal/launch"
	"github.com/mj1618/axwatch/internal/mainloop"
	"github.com/mj1618/axwatch/internal/notify"
	"github.com/mj1618/axwatch/internal/platform"
	"github.com/spf13/cobra"
)

// addTargetFlags registers the flags selecting what to observe. Defaults come
// from the AXWATCH_* environment.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("bundle-id", envconfig.BundleID, "Bundle identifier of the application to observe")
	cmd.Flags().Int("pid", 0, "Observe the application with this PID instead of looking up --bundle-id")
	cmd.Flags().String("notification", envconfig.Notification, "Notification alias or raw AX name (see 'axwatch notifications')")
	cmd.Flags().Bool("prompt", false, "Show the macOS accessibility permission prompt when untrusted")
	cmd.Flags().Bool("desktop-notify", envconfig.DesktopNotify, "Post a desktop notification for every received notification")
	cmd.Flags().String("ui-mode", string(platform.UIModeAccessory), "Application shell mode: accessory, regular, background")
}

// targetOptions are the parsed target flags.
type targetOptions struct {
	launch        launch.Config
	desktopNotify bool
	uiMode        platform.UIMode
}

func parseTargetFlags(cmd *cobra.Command) (targetOptions, error) {
	bundleID, _ := cmd.Flags().GetString("bundle-id")
	pid, _ := cmd.Flags().GetInt("pid")
	notificationName, _ := cmd.Flags().GetString("notification")
	prompt, _ := cmd.Flags().GetBool("prompt")
	desktopNotify, _ := cmd.Flags().GetBool("desktop-notify")
	uiModeName, _ := cmd.Flags().GetString("ui-mode")

	if bundleID == "" && pid == 0 {
		return targetOptions{}, fmt.Errorf("--bundle-id or --pid is required")
	}
	if pid < 0 {
		return targetOptions{}, fmt.Errorf("--pid must be positive, got %d", pid)
	}
	notification, err := platform.ParseNotification(notificationName)
	if err != nil {
		return targetOptions{}, err
	}
	uiMode, err := platform.ParseUIMode(uiModeName)
	if err != nil {
		return targetOptions{}, err
	}

	return targetOptions{
		launch: launch.Config{
			BundleID:     bundleID,
			PID:          pid,
			Notification: notification,
			Prompt:       prompt,
		},
		desktopNotify: desktopNotify,
		uiMode:        uiMode,
	}, nil
}

// desktopSink returns the desktop notifier when enabled, nil otherwise.
// MultiSink skips nil entries.
func desktopSink(enabled bool) launch.Sink {
	if !enabled {
		return nil
	}
	return notify.NewDesktop()
}

// newMainLoop returns a loop that pumps the platform run loop while idle.
func newMainLoop(provider *platform.Provider) *mainloop.Loop {
	if provider.RunLoop == nil {
		return mainloop.New(nil)
	}
	return mainloop.New(provider.RunLoop.Pump)
}

// scheduleShell queues the application shell setup as the first unit of
// work on loop, so it happens before the launch sequence runs.
func scheduleShell(loop *mainloop.Loop, provider *platform.Provider, mode platform.UIMode) {
	if provider.Shell == nil {
		return
	}
	loop.Async(func() {
		if err := provider.Shell.SetUIMode(mode); err != nil {
			slog.Warn("cannot set application shell mode", "mode", mode, "error", err)
		}
	})
}

// signalContext returns a context cancelled on SIGINT/SIGTERM and, when
// duration is positive, after duration.
func signalContext(parent context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if duration <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, duration)
	return ctx, func() {
		cancel()
		stop()
	}
}
