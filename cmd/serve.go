package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mj1618/axwatch/internal/envconfig"
	"github.com/mj1618/axwatch/internal/launch"
	"github.com/mj1618/axwatch/internal/output"
	"github.com/mj1618/axwatch/internal/platform"
	"github.com/mj1618/axwatch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server reporting the observer and its notifications",
	Long: `Run the watch launch sequence and start a Model Context Protocol (MCP) server
that exposes its state as tools:

  trust    accessibility permission, optionally prompting
  apps     running applications
  status   observer registration outcome and received count
  events   recent registration and notification events

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

With stdio, stdout carries the protocol, so events are only available through
the events tool. With streamable-http they are also printed as in 'watch'.

Examples:
  axwatch serve
  axwatch serve --transport streamable-http --port 8080
  axwatch serve --notification window-resized`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addTargetFlags(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	opts, err := parseTargetFlags(cmd)
	if err != nil {
		return err
	}
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cfg := server.Config{Transport: transport, Port: port}

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	events := server.NewEventLog(envconfig.EventLogSize)
	srv := server.New(provider, events)

	sink := launch.MultiSink{events, desktopSink(opts.desktopNotify)}
	if transport == "streamable-http" {
		ew := output.NewEventWriter(cmd.OutOrStdout(), output.OutputFormat)
		defer ew.Close()
		sink = append(sink, ew)
	}

	ctx, cancel := signalContext(cmd.Context(), 0)
	defer cancel()
	ctx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// The transport ending (stdin closed, shutdown) ends the main loop too.
		defer stopLoop()
		slog.Info("mcp server starting", "transport", cfg.Transport, "port", cfg.Port)
		return srv.Serve(gctx, cfg)
	})

	loop := newMainLoop(provider)
	scheduleShell(loop, provider, opts.uiMode)

	var sess *launch.Session
	seq := launch.New(provider, opts.launch, sink)
	loop.Async(func() {
		sess = seq.Run()
		srv.SetSession(sess)
	})

	loop.Run(gctx)

	if sess != nil {
		if err := sess.Close(); err != nil {
			slog.Warn("teardown", "error", err)
		}
	}
	stopLoop()

	err = g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
