package tracker

import (
	"sync/atomic"
	"time"
)

// Item is anything the tracker can list. Two items are the same item iff
// their keys are equal. An empty key marks an absent item.
type Item interface {
	Key() string
	DisplayName() string
}

// Record pairs an item with the time it was last activated.
type Record[T Item] struct {
	item T
	last *atomic.Int64 // unix nanoseconds, shared by every record of the same item
}

func newRecord[T Item](item T, at time.Time) *Record[T] {
	r := &Record[T]{item: item, last: new(atomic.Int64)}
	r.last.Store(at.UnixNano())
	return r
}

// carry wraps the latest copy of an already known item. The activation
// time stays shared with r, so stamps made through an older snapshot
// still land.
func (r *Record[T]) carry(item T) *Record[T] {
	return &Record[T]{item: item, last: r.last}
}

// Item returns the wrapped item.
func (r *Record[T]) Item() T {
	return r.item
}

// LastActivation returns the last time the item was activated.
func (r *Record[T]) LastActivation() time.Time {
	return time.Unix(0, r.last.Load())
}

// Same reports whether both records wrap the same item, ignoring timestamps.
func (r *Record[T]) Same(other *Record[T]) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.item.Key() == other.item.Key()
}

func (r *Record[T]) touch(at time.Time) {
	r.last.Store(at.UnixNano())
}

func (r *Record[T]) stamp() int64 {
	return r.last.Load()
}
