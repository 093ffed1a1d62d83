package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/mj1618/openfiles/internal/config"
	"github.com/mj1618/openfiles/internal/logging"
	"github.com/mj1618/openfiles/internal/output"
	"github.com/mj1618/openfiles/internal/tracker"
	"github.com/mj1618/openfiles/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "openfiles",
	Short: "List the editor windows you have open, most recent first",
	Long: `Track the windows of your editor and list them alphabetically or by
most recent activation. Settings are read from ` + config.RelPath + ` under
the XDG config directory; flags override them.`,
	SilenceUsage: true,
}

// settings is the config file merged with flags, resolved before any
// subcommand runs.
var settings = config.Default()

// logger is the process logger, set up from --log-level.
var logger = log.Default()

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: $XDG_CONFIG_HOME/"+config.RelPath+")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("app", "", "Editor application name (e.g. code)")
	rootCmd.PersistentFlags().String("class", "", "Editor window class, matched when --app is not enough")
	rootCmd.PersistentFlags().String("from", "", "Read windows from a YAML manifest instead of the window manager")
	rootCmd.PersistentFlags().String("sort", "", "Sort order: recency, asc, desc")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentPreRunE = loadSettings
}

func loadSettings(cmd *cobra.Command, args []string) error {
	path, _ := rootCmd.PersistentFlags().GetString("config")
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		// the config commands must still work so a broken file can be replaced
		if !isConfigCommand(cmd) {
			return err
		}
		logger.Warn("ignoring unreadable config", "err", err)
		cfg = config.Default()
	}

	flags := rootCmd.PersistentFlags()
	if v, _ := flags.GetString("format"); v != "" {
		cfg.Format = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetString("app"); v != "" {
		cfg.Editor.App = v
	}
	if v, _ := flags.GetString("class"); v != "" {
		cfg.Editor.Class = v
	}
	if v, _ := flags.GetString("from"); v != "" {
		cfg.Manifest = v
	}
	if v, _ := flags.GetString("sort"); v != "" {
		cfg.Sort = tracker.ParseSortPolicy(v)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logging.Setup(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = l

	switch cfg.Format {
	case "yaml":
		output.OutputFormat = output.FormatYAML
	case "json":
		output.OutputFormat = output.FormatJSON
	}
	output.PrettyOutput, _ = flags.GetBool("pretty")

	settings = cfg
	logger.Debug("settings loaded", "config", path, "editor", cfg.Editor.App, "sort", cfg.Sort)
	return nil
}

// isConfigCommand reports whether cmd is config or one of its subcommands.
func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}
