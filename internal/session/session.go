// Package session runs the activation and refresh cycle that keeps a
// tracker in step with the editor's windows.
package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mj1618/openfiles/internal/model"
	"github.com/mj1618/openfiles/internal/platform"
	"github.com/mj1618/openfiles/internal/tracker"
)

// Session ties the editor source to a tracker.
type Session struct {
	Tracker *tracker.Tracker[model.Window]
	Source  *platform.EditorSource

	policy atomic.Int32
	logger *log.Logger
}

// New creates a session reading windows through reader.
func New(reader platform.Reader, editor platform.EditorOptions, policy tracker.SortPolicy, logger *log.Logger, opts ...tracker.Option[model.Window]) *Session {
	if logger == nil {
		logger = log.Default()
	}
	src := platform.NewEditorSource(reader, editor, logger)
	opts = append([]tracker.Option[model.Window]{
		tracker.WithSource[model.Window](src),
		tracker.WithLogger[model.Window](logger),
	}, opts...)

	s := &Session{
		Tracker: tracker.New(opts...),
		Source:  src,
		logger:  logger,
	}
	s.SetPolicy(policy)
	return s
}

// Policy returns the sort policy used by Tick.
func (s *Session) Policy() tracker.SortPolicy {
	return tracker.SortPolicy(s.policy.Load())
}

// SetPolicy changes the sort policy for later ticks.
func (s *Session) SetPolicy(p tracker.SortPolicy) {
	s.policy.Store(int32(p))
}

// Tick reads the editor's windows once, logs an activation for the
// focused one, then refreshes the tracker with the same list.
func (s *Session) Tick(ctx context.Context) {
	items := s.Source.ListOpenItems(ctx)
	if w, ok := platform.Focused(items); ok {
		s.Tracker.LogActivation(w)
	}
	s.Tracker.Refresh(items, s.Policy())
	s.logger.Debug("tick", "count", len(items))
}

// Activate marks the window with the given key as just activated and
// re-sorts. It reports whether the key is tracked.
func (s *Session) Activate(key string) bool {
	r := s.Tracker.FindKey(key)
	if r == nil {
		return false
	}
	s.Tracker.LogActivation(r.Item())
	s.Resort()
	return true
}

// Resort re-orders the current list under the current policy without
// asking the source.
func (s *Session) Resort() {
	s.Tracker.Resort(s.Policy())
}

// Run ticks every interval until ctx is done. onTick, if set, receives the
// ordered items after each tick.
func (s *Session) Run(ctx context.Context, interval time.Duration, onTick func([]model.Window)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Tick(ctx)
	if onTick != nil {
		onTick(s.Tracker.Items())
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx)
			if onTick != nil {
				onTick(s.Tracker.Items())
			}
		}
	}
}
