package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inverrors "github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/store"
)

// lines joins menu answers into piped input.
func lines(answers ...string) string {
	return strings.Join(answers, "\n") + "\n"
}

func TestShell_FuzzySearchForTypo(t *testing.T) {
	// Given: the sample inventory
	path := setupWorkdir(t)
	seedInventory(t, path)

	// When: choosing fuzzy search for "Red Wyre", then save & exit
	out, err := runCLI(t, lines("4", "Red Wyre", "0"), "shell")

	// Then: Red Wire is the only match shown
	require.NoError(t, err)
	assert.Contains(t, out, "Enter a name (fuzzy): ")
	assert.Contains(t, out, "Found 1 closest match(es):")
	assert.Contains(t, out, "name: Red Wire")
	assert.NotContains(t, out, "name: Blue Wire")
}

func TestShell_Lookups(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    []string
		notWant []string
	}{
		{
			name:    "list all",
			answers: []string{"1", "0"},
			want:    []string{"name: Red Wire", "name: Blue Wire", "name: Tape"},
		},
		{
			name:    "find by id",
			answers: []string{"2", "3", "0"},
			want:    []string{"name: Tape"},
			notWant: []string{"name: Red Wire"},
		},
		{
			name:    "find by missing id",
			answers: []string{"2", "42", "0"},
			want:    []string{"No record with that ID."},
		},
		{
			name:    "partial name",
			answers: []string{"3", "blue", "0"},
			want:    []string{"name: Blue Wire"},
			notWant: []string{"name: Red Wire"},
		},
		{
			name:    "partial name without match",
			answers: []string{"3", "hammer", "0"},
			want:    []string{"No results (partial search)."},
		},
		{
			name:    "fuzzy without match",
			answers: []string{"4", "qqqq", "0"},
			want:    []string{"No fuzzy results close enough."},
		},
		{
			name:    "category ignores case",
			answers: []string{"5", "ELECTRICAL", "0"},
			want:    []string{"name: Red Wire", "name: Blue Wire"},
			notWant: []string{"name: Tape"},
		},
		{
			name:    "unknown category",
			answers: []string{"5", "garden", "0"},
			want:    []string{"No records in that category."},
		},
		{
			name:    "invalid choice",
			answers: []string{"x", "0"},
			want:    []string{"Invalid choice, try again."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setupWorkdir(t)
			seedInventory(t, path)

			out, err := runCLI(t, lines(tt.answers...), "shell")

			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, out, nw)
			}
		})
	}
}

func TestShell_AddThenSaveAndExit(t *testing.T) {
	// Given: the sample inventory
	path := setupWorkdir(t)
	seedInventory(t, path)

	// When: adding a record with a bad quantity first, then save & exit
	out, err := runCLI(t, lines("6", "4", "Solder", "Electrical", "Bench", "lots", "3", "0"), "shell")

	// Then: quantity is asked again and the record is saved last
	require.NoError(t, err)
	assert.Contains(t, out, "Please enter a valid whole number for quantity.")
	assert.Contains(t, out, "Record added (not saved yet).")
	assert.Contains(t, out, "Exiting.")

	records := readInventory(t, path)
	assert.Equal(t, []string{"1", "2", "3", "4"}, recordIDs(records))
	assert.Equal(t, 3, records[3].Qty)
	assert.Equal(t, "Bench", records[3].Location)
}

func TestShell_AddGeneratesID(t *testing.T) {
	path := setupWorkdir(t)

	out, err := runCLI(t, lines("6", "", "Tape", "Supplies", "", "1", "0"), "shell")

	require.NoError(t, err)
	assert.Contains(t, out, "Generated ID ")
	records := readInventory(t, path)
	require.Len(t, records, 1)
	assert.Len(t, records[0].ID, 8)
	assert.Empty(t, records[0].Location)
}

func TestShell_AddDuplicateID(t *testing.T) {
	path := setupWorkdir(t)
	seedInventory(t, path)

	out, err := runCLI(t, lines("6", "1", "Copy", "Misc", "", "1", "0"), "shell")

	require.NoError(t, err)
	assert.Contains(t, out, "ID already exists. Use a unique ID.")
	assert.Len(t, readInventory(t, path), 3)
}

func TestShell_RemoveThenSave(t *testing.T) {
	path := setupWorkdir(t)
	seedInventory(t, path)

	out, err := runCLI(t, lines("7", "2", "7", "2", "9", "0"), "shell")

	require.NoError(t, err)
	assert.Contains(t, out, "Removed (not saved yet).")
	assert.Contains(t, out, "ID not found.")
	assert.Contains(t, out, "Inventory saved to '"+path+"'.")
	assert.Equal(t, []string{"1", "3"}, recordIDs(readInventory(t, path)))
}

func TestShell_SortThenSave(t *testing.T) {
	path := setupWorkdir(t)
	seedInventory(t, path)

	out, err := runCLI(t, lines("8", "price", "8", "qty", "0"), "shell")

	require.NoError(t, err)
	assert.Contains(t, out, "Unknown sort key. Use id, name, category or qty.")
	assert.Contains(t, out, "Sorted by qty (not saved yet).")
	assert.Equal(t, []string{"3", "2", "1"}, recordIDs(readInventory(t, path)))
}

func TestShell_EOFDiscardsUnsavedEdits(t *testing.T) {
	// Given: the sample inventory
	path := setupWorkdir(t)
	seedInventory(t, path)

	// When: adding and removing records, then input ends without saving
	out, err := runCLI(t, lines("6", "4", "Solder", "Electrical", "", "1", "7", "1"), "shell")

	// Then: the session exits cleanly and the file holds the stored records
	require.NoError(t, err)
	assert.Contains(t, out, "Interrupted. Saving the last stored inventory before exit...")
	assert.Equal(t, []string{"1", "2", "3"}, recordIDs(readInventory(t, path)))
}

func TestShell_EOFKeepsExplicitSave(t *testing.T) {
	path := setupWorkdir(t)
	seedInventory(t, path)

	_, err := runCLI(t, lines("7", "3", "9", "7", "1"), "shell")

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, recordIDs(readInventory(t, path)))
}

func TestShell_EOFWithoutFileWritesEmptyInventory(t *testing.T) {
	path := setupWorkdir(t)

	_, err := runCLI(t, "", "shell")

	require.NoError(t, err)
	data, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.Equal(t, "[]\n", string(data))
}

func TestShell_LockedByAnotherSession(t *testing.T) {
	path := setupWorkdir(t)
	seedInventory(t, path)
	held := store.NewFileLock(path)
	require.NoError(t, held.TryLock())
	defer func() { _ = held.Unlock() }()

	_, err := runCLI(t, lines("0"), "shell")

	require.Error(t, err)
	assert.Equal(t, inverrors.ErrCodeFileLocked, inverrors.GetCode(err))
}

func TestShell_ReleasesLockOnExit(t *testing.T) {
	path := setupWorkdir(t)
	seedInventory(t, path)

	_, err := runCLI(t, lines("0"), "shell")
	require.NoError(t, err)

	l := store.NewFileLock(path)
	require.NoError(t, l.TryLock())
	assert.NoError(t, l.Unlock())
}

func TestPrompter_Ask(t *testing.T) {
	var sb strings.Builder
	p := newPrompter(strings.NewReader("  first \nsecond\n"), &sb)
	defer p.close()

	got, err := p.ask(t.Context(), "A: ")
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = p.ask(t.Context(), "B: ")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	_, err = p.ask(t.Context(), "C: ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "A: B: C: ", sb.String())
}

func TestPrompter_AskCancelled(t *testing.T) {
	// Given: input that never produces a line
	r, w := io.Pipe()
	defer func() { _ = w.Close() }()
	p := newPrompter(r, io.Discard)
	defer p.close()

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	// When: the context ends while waiting
	_, err := p.ask(ctx, "> ")

	// Then: the context error is returned
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestNewAnswerer_PlainForPipesAndFiles(t *testing.T) {
	// Given: a piped reader and a buffer
	var sb strings.Builder

	// When: picking the prompt mode
	a := newAnswerer(strings.NewReader(""), &sb, true)
	defer a.close()

	// Then: the line-by-line prompter is used
	assert.IsType(t, &prompter{}, a)

	// And: a regular file is not a terminal either
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	b := newAnswerer(f, f, false)
	defer b.close()
	assert.IsType(t, &prompter{}, b)
}

func TestPrompter_ChoosePrintsMenu(t *testing.T) {
	var sb strings.Builder
	p := newPrompter(strings.NewReader("4\n"), &sb)
	defer p.close()

	got, err := p.choose(t.Context())

	require.NoError(t, err)
	assert.Equal(t, "4", got)
	assert.Equal(t, menuText()+"\nChoose an option: ", sb.String())
	assert.Contains(t, sb.String(), "0) Save & exit")
}

func TestShell_MissingFileStartsEmpty(t *testing.T) {
	// Given: no inventory file yet
	path := setupWorkdir(t)

	// When: opening the shell and saving right away
	out, err := runCLI(t, lines("0"), "shell")

	// Then: the shell says it starts empty instead of reporting a load
	require.NoError(t, err)
	assert.Contains(t, out, "No inventory at '"+path+"' yet, starting empty.")
	assert.NotContains(t, out, "Loaded 0 record(s)")
	assert.FileExists(t, path)
}
