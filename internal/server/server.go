// Package server exposes the watch session over the Model Context Protocol.
package server

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/axwatch/internal/launch"
	"github.com/mj1618/axwatch/internal/platform"
	"github.com/mj1618/axwatch/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server with the platform provider, the current
// watch session and the recent event log.
type Server struct {
	provider *platform.Provider
	events   *EventLog

	sessionMu sync.Mutex
	session   *launch.Session

	mcp *mcpserver.MCPServer
}

// New creates and configures an MCP server with all axwatch tools.
func New(provider *platform.Provider, events *EventLog) *Server {
	s := &Server{
		provider: provider,
		events:   events,
	}
	s.mcp = mcpserver.NewMCPServer("axwatch", version.Version)
	s.registerTools()
	return s
}

// SetSession publishes the session produced by the launch sequence.
func (s *Server) SetSession(sess *launch.Session) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	s.session = sess
}

func (s *Server) currentSession() *launch.Session {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	return s.session
}

// Serve runs the configured transport until ctx is done or the transport fails.
func (s *Server) Serve(ctx context.Context, cfg Config) error {
	switch cfg.Transport {
	case "", "stdio":
		stdio := mcpserver.NewStdioServer(s.mcp)
		return stdio.Listen(ctx, os.Stdin, os.Stdout)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("trust",
			mcp.WithDescription("Report whether axwatch is trusted for accessibility control"),
			mcp.WithBoolean("prompt", mcp.Description("Show the macOS permission prompt when untrusted")),
		),
		s.handleTrust,
	)

	s.mcp.AddTool(
		mcp.NewTool("apps",
			mcp.WithDescription("List running applications, optionally filtered by bundle identifier"),
			mcp.WithString("bundle_id", mcp.Description("Bundle identifier, e.g. 'com.apple.finder'")),
		),
		s.handleApps,
	)

	s.mcp.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Report the observer registration: outcome, target application, notification and received count"),
		),
		s.handleStatus,
	)

	s.mcp.AddTool(
		mcp.NewTool("events",
			mcp.WithDescription("Return recent watch events (registration and received notifications), oldest first"),
			mcp.WithNumber("limit", mcp.Description("Max events to return (0 = all kept)")),
			mcp.WithNumber("since", mcp.Description("Only events with a unix timestamp >= since")),
		),
		s.handleEvents,
	)
}
