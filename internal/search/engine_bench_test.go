package search

import (
	"fmt"
	"testing"

	"github.com/Aman-CERP/invsearch/internal/inventory"
)

// BenchmarkFuzzyMatches_Scale measures uncached fuzzy search as the
// inventory grows.
func BenchmarkFuzzyMatches_Scale(b *testing.B) {
	for _, scale := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("scale_%d", scale), func(b *testing.B) {
			c := benchCollection(scale)
			queries := []string{"Red Wyre", "Tpae", "Cable Tie 12", "Screw M4"}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				FuzzyMatches(c, queries[i%len(queries)], DefaultFuzzyOptions())
			}
		})
	}
}

// BenchmarkEngineFuzzy_Cached measures repeated queries served from cache.
func BenchmarkEngineFuzzy_Cached(b *testing.B) {
	e := NewEngine(benchCollection(10000))
	e.Fuzzy("Red Wyre")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		e.Fuzzy("Red Wyre")
	}
}

func BenchmarkByName(b *testing.B) {
	c := benchCollection(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ByName(c, "wire")
	}
}

func benchCollection(n int) *inventory.Collection {
	names := []string{"Red Wire", "Blue Wire", "Tape", "Cable Tie", "Screw M3", "Washer"}
	categories := []string{"Electrical", "Supplies", "Fasteners"}

	records := make([]*inventory.Record, n)
	for i := range records {
		records[i] = &inventory.Record{
			ID:       fmt.Sprintf("%05d", i),
			Name:     fmt.Sprintf("%s %d", names[i%len(names)], i),
			Category: categories[i%len(categories)],
			Qty:      i % 50,
			Location: fmt.Sprintf("Shelf %c", 'A'+rune(i%6)),
		}
	}
	return inventory.NewCollection(records...)
}
