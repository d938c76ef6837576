package search

import (
	"cmp"
	"math"
	"slices"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/Aman-CERP/invsearch/internal/inventory"
)

const (
	// DefaultFuzzyLimit is the maximum number of fuzzy matches returned.
	DefaultFuzzyLimit = 5

	// DefaultFuzzyCutoff is the minimum similarity ratio for a fuzzy match.
	DefaultFuzzyCutoff = 0.6
)

// FuzzyOptions configures a fuzzy name search.
type FuzzyOptions struct {
	// Limit is the maximum number of matches (default: 5).
	Limit int

	// Cutoff is the minimum similarity ratio in [0, 1] (default: 0.6).
	Cutoff float64
}

// DefaultFuzzyOptions returns the standard limit and cutoff.
func DefaultFuzzyOptions() FuzzyOptions {
	return FuzzyOptions{Limit: DefaultFuzzyLimit, Cutoff: DefaultFuzzyCutoff}
}

// normalized replaces out-of-range values with the defaults.
func (o FuzzyOptions) normalized() FuzzyOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultFuzzyLimit
	}
	if math.IsNaN(o.Cutoff) || o.Cutoff < 0 || o.Cutoff > 1 {
		o.Cutoff = DefaultFuzzyCutoff
	}
	return o
}

// Match is a fuzzy hit with its similarity ratio.
type Match struct {
	Record *inventory.Record
	Score  float64
}

// Fuzzy returns up to limit records whose name is similar to query,
// best match first.
func Fuzzy(c *inventory.Collection, query string, limit int, cutoff float64) []*inventory.Record {
	matches := FuzzyMatches(c, query, FuzzyOptions{Limit: limit, Cutoff: cutoff})
	records := make([]*inventory.Record, len(matches))
	for i, m := range matches {
		records[i] = m.Record
	}
	return records
}

// FuzzyMatches scores every distinct record name against query with the
// matching-blocks ratio and keeps those at or above the cutoff, ordered by
// descending score. Equal scores keep collection order.
//
// Names are keyed verbatim: when several records share a name, the last
// one is returned at the position of the first.
func FuzzyMatches(c *inventory.Collection, query string, opts FuzzyOptions) []Match {
	opts = opts.normalized()
	if query == "" || c.Len() == 0 {
		return []Match{}
	}

	byName := make(map[string]*inventory.Record, c.Len())
	names := make([]string, 0, c.Len())
	for _, r := range c.Records() {
		if _, seen := byName[r.Name]; !seen {
			names = append(names, r.Name)
		}
		byName[r.Name] = r
	}

	// Sequence B is the query so its index is built once.
	m := difflib.NewMatcher(nil, splitRunes(query))
	matches := []Match{}
	for _, name := range names {
		m.SetSeq1(splitRunes(name))
		if m.RealQuickRatio() < opts.Cutoff || m.QuickRatio() < opts.Cutoff {
			continue
		}
		if score := m.Ratio(); score >= opts.Cutoff {
			matches = append(matches, Match{Record: byName[name], Score: score})
		}
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches
}

// Ratio returns the similarity of a and b in [0, 1]: twice the number of
// runes in matching blocks divided by the total rune count.
// Two empty strings are identical.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
