package model

import "time"

// ChangeType represents the kind of list change detected.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeMoved   ChangeType = "moved"
)

// OrderChange represents a single change between two ordered window lists.
type OrderChange struct {
	Type   ChangeType `json:"type"`
	TS     int64      `json:"ts"`
	Key    string     `json:"key"`
	Title  string     `json:"t,omitempty"`
	From   int        `json:"from"` // previous position, -1 for added
	To     int        `json:"to"`   // new position, -1 for removed
	Window *Window    `json:"win,omitempty"`
}

// DiffOrder compares two ordered window lists and returns the changes.
// Windows are matched by Key. A window is reported as moved only when its
// position relative to the other surviving windows changed, so a removal
// does not make every later window look moved.
func DiffOrder(prev, curr []Window) []OrderChange {
	prevPos := make(map[string]int, len(prev))
	for i, w := range prev {
		prevPos[w.Key()] = i
	}
	currPos := make(map[string]int, len(curr))
	for i, w := range curr {
		currPos[w.Key()] = i
	}

	// ranks among windows present in both lists
	prevRank := make(map[string]int)
	for _, w := range prev {
		if _, ok := currPos[w.Key()]; ok {
			prevRank[w.Key()] = len(prevRank)
		}
	}
	currRank := make(map[string]int)
	for _, w := range curr {
		if _, ok := prevPos[w.Key()]; ok {
			currRank[w.Key()] = len(currRank)
		}
	}

	var changes []OrderChange
	now := time.Now().Unix()

	for i, w := range curr {
		from, existed := prevPos[w.Key()]
		if !existed {
			wCopy := w
			changes = append(changes, OrderChange{
				Type:   ChangeAdded,
				TS:     now,
				Key:    w.Key(),
				Title:  w.DisplayName(),
				From:   -1,
				To:     i,
				Window: &wCopy,
			})
			continue
		}
		if prevRank[w.Key()] != currRank[w.Key()] {
			changes = append(changes, OrderChange{
				Type:  ChangeMoved,
				TS:    now,
				Key:   w.Key(),
				Title: w.DisplayName(),
				From:  from,
				To:    i,
			})
		}
	}

	for i, w := range prev {
		if _, exists := currPos[w.Key()]; !exists {
			changes = append(changes, OrderChange{
				Type:  ChangeRemoved,
				TS:    now,
				Key:   w.Key(),
				Title: w.DisplayName(),
				From:  i,
				To:    -1,
			})
		}
	}

	return changes
}
