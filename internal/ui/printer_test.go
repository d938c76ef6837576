package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/invsearch/internal/inventory"
	"github.com/Aman-CERP/invsearch/internal/search"
)

var redWire = &inventory.Record{ID: "1", Name: "Red Wire", Category: "Electrical", Qty: 10, Location: "Shelf A"}

func TestPrinter_Record_LabeledBlock(t *testing.T) {
	// Given: a plain printer
	buf := &bytes.Buffer{}
	p := NewPrinter(buf, false)

	// When: printing one record
	p.Record(redWire)

	// Then: fields appear in storage order between two rules
	rule := strings.Repeat("-", 40)
	want := rule + "\n" +
		"id: 1\n" +
		"name: Red Wire\n" +
		"category: Electrical\n" +
		"qty: 10\n" +
		"location: Shelf A\n" +
		rule + "\n"
	assert.Equal(t, want, buf.String())
}

func TestPrinter_Records_OneBlockEach(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinter(buf, false)

	p.Records([]*inventory.Record{redWire, {ID: "2", Name: "Tape"}})

	out := buf.String()
	assert.Equal(t, 4, strings.Count(out, strings.Repeat("-", 40)))
	assert.Less(t, strings.Index(out, "Red Wire"), strings.Index(out, "Tape"))
}

func TestPrinter_Records_EmptyPrintsNothing(t *testing.T) {
	buf := &bytes.Buffer{}

	NewPrinter(buf, false).Records(nil)

	assert.Empty(t, buf.String())
}

func TestPrinter_Matches_IncludesScore(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinter(buf, false)

	p.Matches([]search.Match{{Record: redWire, Score: 0.875}})

	assert.Contains(t, buf.String(), "score: 0.88\n")
	assert.Contains(t, buf.String(), "name: Red Wire\n")
}

func TestRenderTable_HeadersAndRows(t *testing.T) {
	out := RenderTable([]*inventory.Record{
		redWire,
		{ID: "2", Name: "Tape", Category: "Supplies", Qty: 2, Location: "Drawer 1"},
	}, NoColorStyles())

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	for _, h := range []string{"ID", "NAME", "CATEGORY", "QTY", "LOCATION"} {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "Red Wire")
	assert.Contains(t, out, "Drawer 1")
	assert.Less(t, strings.Index(out, "Red Wire"), strings.Index(out, "Tape"))
}

func TestPrinter_Table(t *testing.T) {
	buf := &bytes.Buffer{}

	NewPrinter(buf, false).Table([]*inventory.Record{redWire})

	assert.Contains(t, buf.String(), "Shelf A")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestGetStyles(t *testing.T) {
	// Plain styles leave text untouched.
	plain := GetStyles(true)
	assert.Equal(t, "qty:", plain.Label.Render("qty:"))
	assert.Equal(t, "x", plain.Header.Render("x"))

	// Colored styles carry a foreground.
	colored := GetStyles(false)
	assert.True(t, colored.Header.GetBold())
	assert.NotEqual(t, plain.Label.GetForeground(), colored.Label.GetForeground())
}

func TestColorEnabled(t *testing.T) {
	buf := &bytes.Buffer{}

	assert.True(t, ColorEnabled("always", buf))
	assert.True(t, ColorEnabled("ALWAYS", buf))
	assert.False(t, ColorEnabled("never", buf))
	assert.False(t, ColorEnabled("auto", buf), "a buffer is not a terminal")
}

func TestIsTTY_NonFileWriters(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())
}
