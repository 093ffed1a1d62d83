package wmctrl

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mj1618/openfiles/internal/model"
	"github.com/mj1618/openfiles/internal/platform"
	"github.com/shirou/gopsutil/v4/process"
)

// runFunc runs an external command and returns its stdout.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// nameFunc resolves a process name from its PID.
type nameFunc func(ctx context.Context, pid int) (string, error)

// Reader implements platform.Reader on top of wmctrl.
type Reader struct {
	run      runFunc
	procName nameFunc
}

// NewReader creates a reader that shells out to wmctrl and xprop.
func NewReader() *Reader {
	return &Reader{run: runCommand, procName: processName}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func processName(ctx context.Context, pid int) (string, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return "", err
	}
	return p.NameWithContext(ctx)
}

// ListWindows returns all managed windows, filtered per ListOptions. The
// active window is marked as focused.
func (r *Reader) ListWindows(ctx context.Context, opts platform.ListOptions) ([]model.Window, error) {
	out, err := r.run(ctx, "wmctrl", "-lpx")
	if err != nil {
		return nil, err
	}
	entries, err := parseWindowList(out)
	if err != nil {
		return nil, err
	}

	active := r.activeWindow(ctx)
	names := make(map[int]string)

	windows := []model.Window{}
	for _, e := range entries {
		app := r.appName(ctx, e, names)

		if opts.PID != 0 && e.PID != opts.PID {
			continue
		}
		if opts.App != "" && !strings.EqualFold(app, opts.App) {
			continue
		}
		if opts.Class != "" && !strings.EqualFold(e.className(), opts.Class) {
			continue
		}

		windows = append(windows, model.Window{
			App:     app,
			PID:     e.PID,
			Title:   e.Title,
			ID:      e.ID,
			Class:   e.className(),
			Desktop: e.Desktop,
			Focused: active != 0 && e.ID == active,
		})
	}
	return windows, nil
}

// activeWindow returns the focused window ID, or 0 if it cannot be read.
func (r *Reader) activeWindow(ctx context.Context) int {
	out, err := r.run(ctx, "xprop", "-root", "_NET_ACTIVE_WINDOW")
	if err != nil {
		return 0
	}
	id, err := parseActiveWindow(out)
	if err != nil {
		return 0
	}
	return id
}

// appName prefers the process name and falls back to the WM_CLASS
// instance, which is all we have for remote or PID-less (0) clients.
func (r *Reader) appName(ctx context.Context, e entry, cache map[int]string) string {
	if e.PID > 0 && r.procName != nil {
		if name, ok := cache[e.PID]; ok {
			return name
		}
		if name, err := r.procName(ctx, e.PID); err == nil && name != "" {
			cache[e.PID] = name
			return name
		}
	}
	return e.instance()
}
