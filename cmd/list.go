package cmd

import (
	"github.com/mj1618/openfiles/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the editor's open windows",
	Long: `List the editor's open windows once, in the configured order.

A single run has no activation history, so RECENCY puts the focused window
first and keeps the window manager's order for the rest. Use watch or serve
for a history that builds up over time.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession(settings)
	if err != nil {
		return err
	}

	// the first tick only learns the windows; the second stamps the focused one
	s.Tick(cmd.Context())
	s.Tick(cmd.Context())

	return output.Print(output.NewListResult(s.Tracker.Records(), s.Policy()))
}
