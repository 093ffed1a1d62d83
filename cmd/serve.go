package cmd

import (
	"time"

	"github.com/mj1618/openfiles/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the open-editors list",
	Long: `Start a Model Context Protocol (MCP) server that keeps tracking window
activations in the background and exposes the list as tools
(list_open, activate, find).

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  openfiles serve
  openfiles serve --transport streamable-http --port 8080
  openfiles serve --interval 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("interval", -1, "Background refresh interval in milliseconds (0 to refresh only on request; default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	intervalMs, _ := cmd.Flags().GetInt("interval")

	interval := settings.RefreshInterval()
	if intervalMs >= 0 {
		interval = time.Duration(intervalMs) * time.Millisecond
	}

	s, err := newSession(settings)
	if err != nil {
		return err
	}

	if s.Source.FindEditorContainer(cmd.Context()) == nil {
		logger.Warn("editor is not running, the list stays empty until it starts", "app", settings.Editor.App, "class", settings.Editor.Class)
	}

	srv := server.New(s, logger)
	return srv.Serve(cmd.Context(), server.Config{
		Transport: transport,
		Port:      port,
		Interval:  interval,
	})
}
