// Package logging builds the process logger. Logs go to stderr so they
// never mix with command output or the MCP stdio transport.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w at the named level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "openfiles",
		Level:           lvl,
	}), nil
}

// Setup creates a stderr logger and installs it as the default.
func Setup(level string) (*log.Logger, error) {
	logger, err := New(os.Stderr, level)
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)
	return logger, nil
}
