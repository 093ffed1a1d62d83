// Package tracker keeps an ordered list of open items together with the
// time each one was last activated.
//
// Refreshes build the new list privately and publish it in one step, so
// readers always see either the previous list or the next one.
package tracker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Source supplies the current list of open items. Implementations must not
// fail: problems are logged and reported as an empty list.
type Source[T Item] interface {
	ListOpenItems(ctx context.Context) []T
}

// Tracker mirrors an externally supplied list of open items.
type Tracker[T Item] struct {
	refreshMu sync.Mutex // one refresh cycle at a time
	mu        sync.Mutex // serializes publishing with LogActivation
	records   atomic.Pointer[[]*Record[T]]

	clock  func() time.Time
	logger *log.Logger
	source Source[T]
}

// Option configures a Tracker.
type Option[T Item] func(*Tracker[T])

// WithClock sets the time source used for activation stamps.
func WithClock[T Item](clock func() time.Time) Option[T] {
	return func(t *Tracker[T]) { t.clock = clock }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger[T Item](logger *log.Logger) Option[T] {
	return func(t *Tracker[T]) { t.logger = logger }
}

// WithSource sets the source used by RefreshFromSource.
func WithSource[T Item](source Source[T]) Option[T] {
	return func(t *Tracker[T]) { t.source = source }
}

// New creates an empty tracker.
func New[T Item](opts ...Option[T]) *Tracker[T] {
	t := &Tracker[T]{
		clock:  time.Now,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	empty := []*Record[T]{}
	t.records.Store(&empty)
	return t
}

func (t *Tracker[T]) snapshot() []*Record[T] {
	return *t.records.Load()
}

// FindRecord returns the first record wrapping item, or nil.
func (t *Tracker[T]) FindRecord(item T) *Record[T] {
	return t.FindKey(keyOf(item))
}

// FindKey returns the first record whose item has the given key, or nil.
func (t *Tracker[T]) FindKey(key string) *Record[T] {
	if key == "" {
		return nil
	}
	return find(t.snapshot(), key)
}

// keyOf returns the item's key, or "" for a nil interface value. A Key
// method that panics (a nil pointer receiver) also counts as absent.
func keyOf[T Item](item T) (key string) {
	if any(item) == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			key = ""
		}
	}()
	return item.Key()
}

func find[T Item](records []*Record[T], key string) *Record[T] {
	for _, r := range records {
		if r.item.Key() == key {
			return r
		}
	}
	return nil
}

// LogActivation stamps the record for item with the current time. Items
// that are not tracked yet are ignored; it reports whether a record was
// updated.
func (t *Tracker[T]) LogActivation(item T) bool {
	key := keyOf(item)
	if key == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	r := find(t.snapshot(), key)
	if r == nil {
		return false
	}
	r.touch(t.clock())
	return true
}

// Refresh replaces the tracked list with raw, ordered by policy. Known
// items keep their activation time but take the fresh item value (titles
// change); new items are stamped as just activated.
func (t *Tracker[T]) Refresh(raw []T, policy SortPolicy) {
	t.refreshMu.Lock()
	defer t.refreshMu.Unlock()

	prev := t.snapshot()

	index := make(map[string]*Record[T], len(prev))
	for _, r := range prev {
		if _, ok := index[r.item.Key()]; !ok {
			index[r.item.Key()] = r
		}
	}

	now := t.clock()
	next := make([]*Record[T], 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, item := range raw {
		key := keyOf(item)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		var r *Record[T]
		if known, ok := index[key]; ok {
			r = known.carry(item)
		} else {
			r = newRecord(item, now)
		}
		next = append(next, r)
	}

	sortRecords(next, policy)

	t.mu.Lock()
	t.records.Store(&next)
	t.mu.Unlock()
}

// Resort re-orders the current list by policy. Unlike Refresh it takes
// no input list, so an item dropped by a concurrent refresh stays dropped.
func (t *Tracker[T]) Resort(policy SortPolicy) {
	t.refreshMu.Lock()
	defer t.refreshMu.Unlock()

	next := t.Records()
	sortRecords(next, policy)

	t.mu.Lock()
	t.records.Store(&next)
	t.mu.Unlock()
}

// RefreshFromSource refreshes from the configured source. Without a source
// the list becomes empty.
func (t *Tracker[T]) RefreshFromSource(ctx context.Context, policy SortPolicy) {
	var raw []T
	if t.source != nil {
		raw = t.source.ListOpenItems(ctx)
	} else {
		t.logger.Warn("refresh requested without a source")
	}
	t.Refresh(raw, policy)
	t.logger.Debug("refreshed open items", "count", len(raw), "sort", policy)
}

// Items returns the tracked items in the current order.
func (t *Tracker[T]) Items() []T {
	records := t.snapshot()
	items := make([]T, len(records))
	for i, r := range records {
		items[i] = r.item
	}
	return items
}

// Records returns the tracked records in the current order. The slice is
// a copy; the records are shared with the tracker.
func (t *Tracker[T]) Records() []*Record[T] {
	records := t.snapshot()
	out := make([]*Record[T], len(records))
	copy(out, records)
	return out
}

// Len returns the number of tracked items.
func (t *Tracker[T]) Len() int {
	return len(t.snapshot())
}
