package platform

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mj1618/openfiles/internal/model"
)

// EditorSource lists the open windows of the editor application. It never
// returns errors: backend failures are logged and reported as "nothing
// open".
type EditorSource struct {
	reader Reader
	opts   EditorOptions
	logger *log.Logger
}

// NewEditorSource creates a source over reader. A nil logger uses the
// default logger.
func NewEditorSource(reader Reader, opts EditorOptions, logger *log.Logger) *EditorSource {
	if logger == nil {
		logger = log.Default()
	}
	return &EditorSource{reader: reader, opts: opts, logger: logger}
}

// FindEditorContainer locates the editor application among the listed
// windows. It returns nil when the editor is not running or the backend
// could not be queried.
func (s *EditorSource) FindEditorContainer(ctx context.Context) *model.Container {
	_, container := s.readEditor(ctx)
	return container
}

// readEditor lists all windows once and finds the editor among them. A
// backend failure is logged and reported as no windows and no editor.
func (s *EditorSource) readEditor(ctx context.Context) ([]model.Window, *model.Container) {
	windows, err := s.listWindows(ctx, ListOptions{})
	if err != nil {
		s.logger.Error("unable to read the list of open windows", "err", err)
		return nil, nil
	}
	container := s.containerOf(windows)
	if container == nil {
		s.logger.Debug("editor not found", "app", s.opts.App, "class", s.opts.Class)
	}
	return windows, container
}

func (s *EditorSource) containerOf(windows []model.Window) *model.Container {
	var c *model.Container
	for _, w := range windows {
		if !s.isEditor(w) {
			continue
		}
		if c == nil {
			c = &model.Container{App: w.App}
		}
		if !slices.Contains(c.PIDs, w.PID) {
			c.PIDs = append(c.PIDs, w.PID)
		}
	}
	return c
}

func (s *EditorSource) isEditor(w model.Window) bool {
	if s.opts.App == "" && s.opts.Class == "" {
		return true
	}
	if s.opts.App != "" && strings.EqualFold(w.App, s.opts.App) {
		return true
	}
	if s.opts.Class != "" && strings.EqualFold(w.Class, s.opts.Class) {
		return true
	}
	return false
}

// ListOpenItems returns the editor's open windows in backend order.
// Windows without a display name are not considered open.
func (s *EditorSource) ListOpenItems(ctx context.Context) []model.Window {
	windows, container := s.readEditor(ctx)
	if container == nil {
		return []model.Window{}
	}

	result := make([]model.Window, 0, len(windows))
	for _, w := range windows {
		if container.Contains(w) && w.DisplayName() != "" {
			result = append(result, w)
		}
	}
	return result
}

// FocusedItem returns the editor window that currently has focus.
func (s *EditorSource) FocusedItem(ctx context.Context) (model.Window, bool) {
	return Focused(s.ListOpenItems(ctx))
}

// Focused returns the first focused window in windows.
func Focused(windows []model.Window) (model.Window, bool) {
	for _, w := range windows {
		if w.Focused {
			return w, true
		}
	}
	return model.Window{}, false
}

// listWindows calls the backend, turning a panic into an error.
func (s *EditorSource) listWindows(ctx context.Context, opts ListOptions) (windows []model.Window, err error) {
	if s.reader == nil {
		return nil, fmt.Errorf("no window reader configured")
	}
	defer func() {
		if r := recover(); r != nil {
			windows, err = nil, fmt.Errorf("window backend panicked: %v", r)
		}
	}()
	return s.reader.ListWindows(ctx, opts)
}
