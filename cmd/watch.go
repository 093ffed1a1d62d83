package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mj1618/openfiles/internal/model"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Track window activations and stream order changes as JSONL",
	Long: `Poll the editor's windows, record which one has focus, and emit changes to
the ordered list (added, removed, moved windows) as JSONL to stdout.

The first line is a snapshot of the full list. No output is emitted while
the list is stable. Output is always JSONL regardless of the --format flag.

Use Ctrl+C or --duration to stop watching.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Int("interval", 0, "Polling interval in milliseconds (default from config)")
	watchCmd.Flags().Int("duration", 0, "Max seconds to watch (0 = until Ctrl+C)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	intervalMs, _ := cmd.Flags().GetInt("interval")
	durationSec, _ := cmd.Flags().GetInt("duration")

	interval := settings.RefreshInterval()
	if intervalMs > 0 {
		interval = time.Duration(intervalMs) * time.Millisecond
	}

	s, err := newSession(settings)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if durationSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(durationSec)*time.Second)
		defer cancel()
	}

	w := newWatchWriter(os.Stdout)
	start := time.Now()
	err = s.Run(ctx, interval, w.update)

	w.done(time.Since(start))
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// watchWriter turns successive window lists into JSONL events.
type watchWriter struct {
	enc    *json.Encoder
	prev   []model.Window
	primed bool
	events int
}

func newWatchWriter(out io.Writer) *watchWriter {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return &watchWriter{enc: enc}
}

func (w *watchWriter) update(curr []model.Window) {
	if !w.primed {
		w.primed = true
		w.prev = curr
		titles := make([]string, len(curr))
		for i, win := range curr {
			titles[i] = win.DisplayName()
		}
		w.enc.Encode(map[string]interface{}{
			"type":  "snapshot",
			"ts":    time.Now().Unix(),
			"count": len(curr),
			"items": titles,
		})
		return
	}

	for _, change := range model.DiffOrder(w.prev, curr) {
		w.enc.Encode(change)
		w.events++
	}
	w.prev = curr
}

func (w *watchWriter) done(elapsed time.Duration) {
	w.enc.Encode(map[string]interface{}{
		"type":    "done",
		"ts":      time.Now().Unix(),
		"elapsed": fmt.Sprintf("%.1fs", elapsed.Seconds()),
		"events":  w.events,
	})
}
