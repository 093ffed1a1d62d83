// Package server exposes the open-editors list as MCP tools.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/openfiles/internal/session"
	"github.com/mj1618/openfiles/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	Interval  time.Duration // background refresh interval, 0 disables it
}

// Server wraps the MCP server around a session.
type Server struct {
	session *session.Session
	logger  *log.Logger
	mcp     *mcpserver.MCPServer
}

// New creates a server with all tools registered.
func New(s *session.Session, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	srv := &Server{
		session: s,
		logger:  logger,
		mcp:     mcpserver.NewMCPServer("openfiles", version.Version),
	}
	srv.registerTools()
	return srv
}

// Serve refreshes in the background and serves MCP on the configured
// transport until the transport stops or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, cfg Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Interval > 0 {
		go func() {
			if err := s.session.Run(ctx, cfg.Interval, nil); err != nil && ctx.Err() == nil {
				s.logger.Error("refresh loop stopped", "err", err)
			}
		}()
	} else {
		s.session.Tick(ctx)
	}

	s.logger.Info("serving MCP", "transport", cfg.Transport, "port", cfg.Port, "interval", cfg.Interval)

	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		errc := make(chan error, 1)
		go func() { errc <- httpServer.Start(fmt.Sprintf(":%d", cfg.Port)) }()
		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			return httpServer.Shutdown(shutdownCtx)
		}
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_open",
			mcp.WithDescription("List the editor windows that are currently open, most recently activated first unless another sort is given"),
			mcp.WithString("sort",
				mcp.Description("Sort order: RECENCY, NAME_ASC or NAME_DESC (unknown values mean RECENCY). Persists for later calls."),
			),
			mcp.WithBoolean("refresh", mcp.Description("Re-read the window list before answering (default: true)")),
		),
		s.handleListOpen,
	)

	s.mcp.AddTool(
		mcp.NewTool("activate",
			mcp.WithDescription("Record that an open editor window was just activated, moving it to the front of the RECENCY order"),
			mcp.WithString("key", mcp.Description("Window key as returned by list_open"), mcp.Required()),
		),
		s.handleActivate,
	)

	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Look up one open editor window by key, including its last activation time"),
			mcp.WithString("key", mcp.Description("Window key as returned by list_open"), mcp.Required()),
		),
		s.handleFind,
	)
}
