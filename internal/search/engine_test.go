package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/inventory"
)

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(newTestCollection())

	assert.Equal(t, DefaultFuzzyOptions(), e.FuzzyDefaults())
	assert.Equal(t, 0, e.CacheLen())
}

func TestNewEngine_OptionsAreNormalized(t *testing.T) {
	e := NewEngine(newTestCollection(),
		WithFuzzyDefaults(FuzzyOptions{Limit: -3, Cutoff: 2}),
		WithCacheSize(0),
	)

	assert.Equal(t, DefaultFuzzyOptions(), e.FuzzyDefaults())
}

func TestEngine_LookupsDelegate(t *testing.T) {
	e := NewEngine(newTestCollection())

	r, ok := e.FindByID("3")
	require.True(t, ok)
	assert.Equal(t, "Tape", r.Name)
	assert.Equal(t, []string{"1", "2"}, recordIDs(e.ByName("wire")))
	assert.Equal(t, []string{"3"}, recordIDs(e.ByCategory("supplies")))
}

func TestEngine_Fuzzy_UsesConfiguredDefaults(t *testing.T) {
	// Given: an engine with a low cutoff
	e := NewEngine(newTestCollection(), WithFuzzyDefaults(FuzzyOptions{Limit: 5, Cutoff: 0.5}))

	// When: searching with the typo
	matches := e.Fuzzy("Red Wyre")

	// Then: Blue Wire now clears the cutoff too, ranked after Red Wire
	require.Len(t, matches, 2)
	assert.Equal(t, "1", matches[0].Record.ID)
	assert.Equal(t, "2", matches[1].Record.ID)
}

func TestEngine_Fuzzy_CachesByQueryAndOptions(t *testing.T) {
	e := NewEngine(newTestCollection())

	first := e.Fuzzy("Red Wyre")
	second := e.Fuzzy("Red Wyre")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, e.CacheLen())

	e.FuzzyWith("Red Wyre", FuzzyOptions{Limit: 1, Cutoff: 0.6})
	assert.Equal(t, 2, e.CacheLen())
}

func TestEngine_Fuzzy_SeesMutations(t *testing.T) {
	// Given: a cached fuzzy result
	e := NewEngine(newTestCollection())
	require.Len(t, e.Fuzzy("Red Wyre"), 1)

	// When: a closer record is added
	require.NoError(t, e.Add(&inventory.Record{ID: "4", Name: "Red Wyre"}))

	// Then: the stale entry is not served
	matches := e.Fuzzy("Red Wyre")
	require.Len(t, matches, 2)
	assert.Equal(t, "4", matches[0].Record.ID)

	// And removal is seen as well
	require.True(t, e.Remove("4"))
	assert.Len(t, e.Fuzzy("Red Wyre"), 1)
}

func TestEngine_Fuzzy_ReturnsCopy(t *testing.T) {
	e := NewEngine(newTestCollection())

	got := e.Fuzzy("Red Wyre")
	got[0] = Match{}

	again := e.Fuzzy("Red Wyre")
	require.Len(t, again, 1)
	assert.Equal(t, "1", again[0].Record.ID)
}

func TestEngine_Add(t *testing.T) {
	e := NewEngine(newTestCollection())

	err := e.Add(&inventory.Record{ID: "4", Name: "Solder", Category: "Electrical", Qty: 1})

	require.NoError(t, err)
	assert.Equal(t, 4, e.Collection().Len())
	assert.Equal(t, "4", e.Collection().Records()[3].ID)
}

func TestEngine_Add_RejectsDuplicateID(t *testing.T) {
	// Given: a collection holding id 1
	e := NewEngine(newTestCollection())

	// When: adding another record with id 1
	err := e.Add(&inventory.Record{ID: "1", Name: "Other"})

	// Then: it fails with the duplicate code and nothing changes
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDuplicateID, errors.GetCode(err))
	assert.Equal(t, 3, e.Collection().Len())
}

func TestEngine_Remove(t *testing.T) {
	e := NewEngine(newTestCollection())

	assert.True(t, e.Remove("2"))
	assert.False(t, e.Remove("2"))
	assert.Equal(t, []string{"1", "3"}, recordIDs(e.Collection().Records()))
}
