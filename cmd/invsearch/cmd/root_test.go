package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/invsearch/internal/inventory"
	"github.com/Aman-CERP/invsearch/internal/store"
)

const sampleInventory = `[
  {"id": 1, "name": "Red Wire", "category": "Electrical", "qty": 10, "location": "Shelf A"},
  {"id": "2", "name": "Blue Wire", "category": "Electrical", "qty": "4", "location": "Shelf A"},
  {"id": "3", "name": "Tape", "category": "Supplies", "qty": 2}
]`

// setupWorkdir isolates HOME, the user config and the working directory,
// and returns the inventory path inside the new working directory.
func setupWorkdir(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{
		"INVSEARCH_DATA_FILE", "INVSEARCH_FUZZY_LIMIT", "INVSEARCH_FUZZY_CUTOFF",
		"INVSEARCH_LOG_LEVEL", "INVSEARCH_NO_COLOR",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(stopLoggingQuietly)

	return filepath.Join(dir, store.DefaultFileName)
}

// seedInventory writes the sample inventory to path.
func seedInventory(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(sampleInventory), 0644))
}

// runCLI executes the root command with args and stdin, returning
// everything written to stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// readInventory decodes the inventory file at path.
func readInventory(t *testing.T, path string) []*inventory.Record {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := store.Decode(f)
	require.NoError(t, err)
	return records
}

func recordIDs(records []*inventory.Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

func TestRootCmd_ShowsHelp(t *testing.T) {
	// Given: a root command

	// When: executing with --help
	out, err := runCLI(t, "", "--help")

	// Then: it should show usage information
	require.NoError(t, err)
	assert.Contains(t, out, "invsearch")
	assert.Contains(t, out, "Available Commands")
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make(map[string]bool)
	for _, sc := range cmd.Commands() {
		names[sc.Name()] = true
	}
	for _, want := range []string{"shell", "list", "get", "search", "add", "remove", "export", "import", "config", "version"} {
		assert.True(t, names[want], "should have %s command", want)
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"data", "debug", "no-color", "no-lock"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "should have --%s flag", name)
	}
	assert.Equal(t, "d", cmd.PersistentFlags().Lookup("data").Shorthand)
}

func TestRootCmd_NoArgsOpensShell(t *testing.T) {
	// Given: a seeded inventory in the working directory
	path := setupWorkdir(t)
	seedInventory(t, path)

	// When: running with no arguments and choosing save & exit
	out, err := runCLI(t, "0\n")

	// Then: the menu is shown and the file is rewritten in standard form
	require.NoError(t, err)
	assert.Contains(t, out, "=== INVENTORY SEARCH ===")
	assert.Contains(t, out, "Loaded 3 record(s)")
	assert.Contains(t, out, "Exiting.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "1"`)
	assert.Contains(t, string(data), `"qty": 4`)
}

func TestRootCmd_DataFlagRelativeToWorkdir(t *testing.T) {
	path := setupWorkdir(t)
	other := filepath.Join(filepath.Dir(path), "stock", "items.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(other), 0755))
	seedInventory(t, other)

	out, err := runCLI(t, "", "list", "--data", filepath.Join("stock", "items.json"))

	require.NoError(t, err)
	assert.Contains(t, out, "name: Tape")
	assert.NoFileExists(t, path, "the default file is not touched")
}

func TestVersionCmd(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		out, err := runCLI(t, "", "version", "--short")
		require.NoError(t, err)
		assert.Equal(t, "dev\n", out)
	})

	t.Run("full", func(t *testing.T) {
		out, err := runCLI(t, "", "version")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "invsearch dev"))
		assert.Contains(t, out, "commit:")
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCLI(t, "", "version", "--json")
		require.NoError(t, err)

		var info map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "dev", info["version"])
	})
}
