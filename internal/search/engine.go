package search

import (
	"log/slog"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/inventory"
)

// DefaultCacheSize is the number of fuzzy results kept per engine.
const DefaultCacheSize = 128

// fuzzyKey identifies a cached fuzzy query.
type fuzzyKey struct {
	query  string
	limit  int
	cutoff float64
}

// cachedMatches is a fuzzy result tagged with the collection revision it
// was computed against.
type cachedMatches struct {
	revision uint64
	matches  []Match
}

// Engine runs queries and mutations against one session's collection.
// It memoizes fuzzy results until the collection changes.
// An Engine is not safe for concurrent use.
type Engine struct {
	coll      *inventory.Collection
	fuzzy     FuzzyOptions
	cacheSize int
	cache     *lru.Cache[fuzzyKey, cachedMatches]
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithFuzzyDefaults sets the limit and cutoff used by Engine.Fuzzy.
func WithFuzzyDefaults(opts FuzzyOptions) EngineOption {
	return func(e *Engine) {
		e.fuzzy = opts.normalized()
	}
}

// WithCacheSize sets the fuzzy result cache size.
// If size <= 0, DefaultCacheSize is used.
func WithCacheSize(size int) EngineOption {
	return func(e *Engine) {
		e.cacheSize = size
	}
}

// NewEngine creates an engine over coll.
func NewEngine(coll *inventory.Collection, opts ...EngineOption) *Engine {
	e := &Engine{
		coll:      coll,
		fuzzy:     DefaultFuzzyOptions(),
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cacheSize <= 0 {
		e.cacheSize = DefaultCacheSize
	}
	e.cache, _ = lru.New[fuzzyKey, cachedMatches](e.cacheSize)
	return e
}

// Collection returns the collection the engine operates on.
func (e *Engine) Collection() *inventory.Collection {
	return e.coll
}

// FuzzyDefaults returns the limit and cutoff used by Fuzzy.
func (e *Engine) FuzzyDefaults() FuzzyOptions {
	return e.fuzzy
}

// FindByID returns the first record with the given id.
func (e *Engine) FindByID(id string) (*inventory.Record, bool) {
	return FindByID(e.coll, id)
}

// ByName returns records whose name contains query.
func (e *Engine) ByName(query string) []*inventory.Record {
	return ByName(e.coll, query)
}

// ByCategory returns records in the given category.
func (e *Engine) ByCategory(category string) []*inventory.Record {
	return ByCategory(e.coll, category)
}

// Fuzzy runs a fuzzy name search with the engine defaults.
func (e *Engine) Fuzzy(query string) []Match {
	return e.FuzzyWith(query, e.fuzzy)
}

// FuzzyWith runs a fuzzy name search with explicit options.
// Results computed against the current revision are served from cache.
func (e *Engine) FuzzyWith(query string, opts FuzzyOptions) []Match {
	opts = opts.normalized()
	key := fuzzyKey{query: query, limit: opts.Limit, cutoff: opts.Cutoff}
	rev := e.coll.Revision()

	if hit, ok := e.cache.Get(key); ok && hit.revision == rev {
		slog.Debug("fuzzy_search", slog.String("query", query), slog.Bool("cached", true),
			slog.Int("results", len(hit.matches)))
		return slices.Clone(hit.matches)
	}

	start := time.Now()
	matches := FuzzyMatches(e.coll, query, opts)
	e.cache.Add(key, cachedMatches{revision: rev, matches: matches})

	slog.Debug("fuzzy_search", slog.String("query", query), slog.Bool("cached", false),
		slog.Int("results", len(matches)), slog.Duration("duration", time.Since(start)))
	return slices.Clone(matches)
}

// Add appends r after checking that its id is not already taken.
func (e *Engine) Add(r *inventory.Record) error {
	if _, exists := FindByID(e.coll, r.ID); exists {
		return errors.New(errors.ErrCodeDuplicateID,
			"a record with id "+r.ID+" already exists", nil).
			WithDetail("id", r.ID).
			WithSuggestion("Use a unique id, or remove the existing record first")
	}
	e.coll.Add(r)
	slog.Info("record_added", slog.String("id", r.ID), slog.Int("count", e.coll.Len()))
	return nil
}

// Remove deletes the first record with the given id and reports whether
// one existed.
func (e *Engine) Remove(id string) bool {
	removed := e.coll.RemoveByID(id)
	if removed {
		slog.Info("record_removed", slog.String("id", id), slog.Int("count", e.coll.Len()))
	}
	return removed
}

// CacheLen returns the number of cached fuzzy results.
func (e *Engine) CacheLen() int {
	return e.cache.Len()
}
