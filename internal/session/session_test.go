package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mj1618/openfiles/internal/model"
	"github.com/mj1618/openfiles/internal/platform"
	"github.com/mj1618/openfiles/internal/tracker"
)

// fakeDesktop is a platform.Reader whose windows tests can rearrange.
type fakeDesktop struct {
	mu      sync.Mutex
	windows []model.Window
	err     error
	reads   int
}

func (d *fakeDesktop) ListWindows(_ context.Context, _ platform.ListOptions) ([]model.Window, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reads++
	if d.err != nil {
		return nil, d.err
	}
	out := make([]model.Window, len(d.windows))
	copy(out, d.windows)
	return out, nil
}

func (d *fakeDesktop) focus(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.windows {
		d.windows[i].Focused = d.windows[i].ID == id
	}
}

type stepClock struct {
	mu  sync.Mutex
	now int64
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now++
	return time.Unix(c.now, 0)
}

func titles(ws []model.Window) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Title
	}
	return out
}

func newTestSession(d *fakeDesktop) *Session {
	clock := &stepClock{}
	return New(d, platform.EditorOptions{App: "code"}, tracker.Recency, log.New(io.Discard),
		tracker.WithClock[model.Window](clock.Now))
}

func editorWindows() []model.Window {
	return []model.Window{
		{App: "code", PID: 1, ID: 1, Title: "a.go"},
		{App: "code", PID: 1, ID: 2, Title: "b.go"},
		{App: "code", PID: 1, ID: 3, Title: "c.go"},
		{App: "xterm", PID: 2, ID: 4, Title: "shell"},
	}
}

func TestTick_FocusMovesWindowToFront(t *testing.T) {
	d := &fakeDesktop{windows: editorWindows()}
	s := newTestSession(d)

	s.Tick(context.Background())
	if got := titles(s.Tracker.Items()); len(got) != 3 {
		t.Fatalf("got %v, want 3 editor windows", got)
	}

	d.focus(3)
	s.Tick(context.Background())
	if got := s.Tracker.Items()[0].Title; got != "c.go" {
		t.Errorf("first = %q, want c.go", got)
	}

	d.focus(2)
	s.Tick(context.Background())
	got := titles(s.Tracker.Items())
	if got[0] != "b.go" || got[1] != "c.go" {
		t.Errorf("got %v, want b.go then c.go first", got)
	}
}

func TestTick_BackendFailureEmptiesList(t *testing.T) {
	d := &fakeDesktop{windows: editorWindows()}
	s := newTestSession(d)
	s.Tick(context.Background())

	d.mu.Lock()
	d.err = errors.New("display gone")
	d.mu.Unlock()
	s.Tick(context.Background())

	if n := s.Tracker.Len(); n != 0 {
		t.Errorf("got %d items, want 0", n)
	}
}

func TestActivate(t *testing.T) {
	d := &fakeDesktop{windows: editorWindows()}
	s := newTestSession(d)
	s.Tick(context.Background())

	if s.Activate("win:99") {
		t.Error("unknown key should not activate")
	}
	if !s.Activate("win:2") {
		t.Fatal("expected win:2 to be tracked")
	}
	if got := s.Tracker.Items()[0].Title; got != "b.go" {
		t.Errorf("first = %q, want b.go", got)
	}
}

func TestSetPolicy(t *testing.T) {
	d := &fakeDesktop{windows: editorWindows()}
	s := newTestSession(d)

	s.SetPolicy(tracker.NameDesc)
	s.Tick(context.Background())
	if got := titles(s.Tracker.Items()); got[0] != "c.go" || got[2] != "a.go" {
		t.Errorf("got %v, want descending names", got)
	}
	if s.Policy() != tracker.NameDesc {
		t.Errorf("policy = %s, want NAME_DESC", s.Policy())
	}

	s.SetPolicy(tracker.NameAsc)
	s.Resort()
	if got := titles(s.Tracker.Items()); got[0] != "a.go" {
		t.Errorf("got %v after resort, want ascending names", got)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	d := &fakeDesktop{windows: editorWindows()}
	s := newTestSession(d)

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan int, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, 5*time.Millisecond, func(ws []model.Window) {
			select {
			case ticks <- len(ws):
			default:
			}
		})
	}()

	for i := 0; i < 2; i++ {
		select {
		case n := <-ticks:
			if n != 3 {
				t.Errorf("tick saw %d items, want 3", n)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for tick")
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestTick_ReadsWindowsOnce(t *testing.T) {
	d := &fakeDesktop{windows: editorWindows()}
	s := newTestSession(d)

	d.focus(2)
	s.Tick(context.Background())
	s.Tick(context.Background())

	d.mu.Lock()
	reads := d.reads
	d.mu.Unlock()
	if reads != 2 {
		t.Errorf("got %d window reads for two ticks, want 2", reads)
	}
	if got := s.Tracker.Items()[0].Title; got != "b.go" {
		t.Errorf("first = %q, want b.go", got)
	}
}

func TestActivate_DoesNotRestoreClosedWindow(t *testing.T) {
	d := &fakeDesktop{windows: editorWindows()}
	s := newTestSession(d)
	s.Tick(context.Background())

	// c.go closes; the next tick drops it
	d.mu.Lock()
	d.windows = append(d.windows[:2:2], d.windows[3])
	d.mu.Unlock()
	s.Tick(context.Background())

	if !s.Activate("win:1") {
		t.Fatal("expected win:1 to be tracked")
	}
	got := titles(s.Tracker.Items())
	if len(got) != 2 || got[0] != "a.go" {
		t.Errorf("got %v, want a.go first and c.go gone", got)
	}
	if s.Tracker.FindKey("win:3") != nil {
		t.Error("closed window win:3 is tracked again")
	}
}
