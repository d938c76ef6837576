package inventory

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortKey names a record field records can be ordered by.
type SortKey string

const (
	SortNone       SortKey = ""
	SortByID       SortKey = "id"
	SortByName     SortKey = "name"
	SortByCategory SortKey = "category"
	SortByQty      SortKey = "qty"
)

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortByID, SortByName, SortByCategory, SortByQty:
		return k, nil
	default:
		return SortNone, fmt.Errorf("unknown sort key %q (use: id, name, category, qty)", s)
	}
}

// SortRecords orders records in place by key. The sort is stable, so
// records that compare equal keep their relative order. SortNone is a no-op.
func SortRecords(records []*Record, key SortKey) {
	var compare func(a, b *Record) int
	switch key {
	case SortByID:
		compare = func(a, b *Record) int { return strings.Compare(a.ID, b.ID) }
	case SortByName:
		compare = func(a, b *Record) int { return strings.Compare(a.Name, b.Name) }
	case SortByCategory:
		compare = func(a, b *Record) int { return strings.Compare(a.Category, b.Category) }
	case SortByQty:
		compare = func(a, b *Record) int { return cmp.Compare(a.Qty, b.Qty) }
	default:
		return
	}
	slices.SortStableFunc(records, compare)
}

// Sort orders the collection in place.
func (c *Collection) Sort(key SortKey) {
	if key == SortNone {
		return
	}
	SortRecords(c.records, key)
	c.revision++
}
