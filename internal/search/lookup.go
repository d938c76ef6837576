// Package search provides the lookups over an inventory collection:
// exact id lookup, substring and category filters, and fuzzy name matching.
// Every query is a linear scan that preserves collection order.
package search

import (
	"strings"

	"github.com/Aman-CERP/invsearch/internal/inventory"
)

// FindByID returns the first record whose id equals id.
func FindByID(c *inventory.Collection, id string) (*inventory.Record, bool) {
	for _, r := range c.Records() {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// ByName returns every record whose lowercased name contains the trimmed,
// lowercased query. An empty query matches all records.
func ByName(c *inventory.Collection, query string) []*inventory.Record {
	q := normalize(query)
	results := []*inventory.Record{}
	for _, r := range c.Records() {
		if strings.Contains(strings.ToLower(r.Name), q) {
			results = append(results, r)
		}
	}
	return results
}

// ByCategory returns the records whose category equals category, ignoring
// case and surrounding whitespace. Partial matches do not count.
func ByCategory(c *inventory.Collection, category string) []*inventory.Record {
	q := normalize(category)
	results := []*inventory.Record{}
	for _, r := range c.Records() {
		if normalize(r.Category) == q {
			results = append(results, r)
		}
	}
	return results
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
