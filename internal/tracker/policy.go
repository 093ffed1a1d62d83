package tracker

import (
	"cmp"
	"slices"
	"strings"
)

// SortPolicy selects the order in which tracked items are listed.
type SortPolicy int

const (
	// Recency lists the most recently activated item first.
	Recency SortPolicy = iota
	// NameAsc lists items by display name, A to Z.
	NameAsc
	// NameDesc lists items by display name, Z to A.
	NameDesc
)

// ParseSortPolicy converts a policy token to a SortPolicy. Unknown tokens
// fall back to Recency.
func ParseSortPolicy(s string) SortPolicy {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASC", "NAME_ASC":
		return NameAsc
	case "DESC", "NAME_DESC":
		return NameDesc
	default:
		return Recency
	}
}

func (p SortPolicy) String() string {
	switch p {
	case NameAsc:
		return "NAME_ASC"
	case NameDesc:
		return "NAME_DESC"
	default:
		return "RECENCY"
	}
}

// MarshalText lets policies round-trip through YAML, JSON and TOML as tokens.
func (p SortPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *SortPolicy) UnmarshalText(text []byte) error {
	*p = ParseSortPolicy(string(text))
	return nil
}

func byRecency[T Item](a, b *Record[T]) int {
	return cmp.Compare(b.stamp(), a.stamp())
}

func byNameAsc[T Item](a, b *Record[T]) int {
	return strings.Compare(a.item.DisplayName(), b.item.DisplayName())
}

func byNameDesc[T Item](a, b *Record[T]) int {
	return strings.Compare(b.item.DisplayName(), a.item.DisplayName())
}

// sortRecords orders records in place. The sort is stable, so ties keep
// the order in which the source reported them.
func sortRecords[T Item](records []*Record[T], policy SortPolicy) {
	switch policy {
	case NameAsc:
		slices.SortStableFunc(records, byNameAsc[T])
	case NameDesc:
		slices.SortStableFunc(records, byNameDesc[T])
	default:
		slices.SortStableFunc(records, byRecency[T])
	}
}
