// Package store persists inventory collections as pretty-printed JSON files.
//
// Load and Save are the only storage operations; there is no incremental
// persistence. A missing file loads as an empty collection.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/inventory"
)

// DefaultFileName is the data file used when none is configured.
const DefaultFileName = "inventory.json"

// FileStore reads and writes one inventory file.
type FileStore struct {
	path string
}

// NewFileStore creates a store for the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the data file path.
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether the data file is present.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the data file into a new collection.
// A missing file yields an empty collection and no error.
func (s *FileStore) Load() (*inventory.Collection, error) {
	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}
	slog.Info("inventory_loaded", slog.String("path", s.path), slog.Int("count", len(records)))
	return inventory.NewCollection(records...), nil
}

// Reload replaces the contents of c with what is currently on disk.
func (s *FileStore) Reload(c *inventory.Collection) error {
	records, err := s.readRecords()
	if err != nil {
		return err
	}
	c.Replace(records)
	slog.Info("inventory_reloaded", slog.String("path", s.path), slog.Int("count", len(records)))
	return nil
}

// Save writes c to the data file.
// Uses atomic write (temp file + rename) for safety.
func (s *FileStore) Save(c *inventory.Collection) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.New(errors.ErrCodeFilePermission,
				fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, c.Records()); err != nil {
		return errors.New(errors.ErrCodeSaveFailed, "failed to encode inventory", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0644); err != nil {
		return errors.New(errors.ErrCodeSaveFailed,
			fmt.Sprintf("failed to write %s", tmpPath), err).
			WithDetail("path", s.path)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		// Clean up temp file on failure
		_ = os.Remove(tmpPath)
		return errors.New(errors.ErrCodeSaveFailed,
			fmt.Sprintf("failed to save %s", s.path), err).
			WithDetail("path", s.path)
	}

	slog.Info("inventory_saved", slog.String("path", s.path), slog.Int("count", c.Len()))
	return nil
}

func (s *FileStore) readRecords() ([]*inventory.Record, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []*inventory.Record{}, nil
	}
	if err != nil {
		return nil, errors.New(errors.ErrCodeFilePermission,
			fmt.Sprintf("failed to read %s", s.path), err).
			WithDetail("path", s.path)
	}

	records, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.New(errors.ErrCodeFileCorrupt,
			fmt.Sprintf("failed to parse %s", s.path), err).
			WithDetail("path", s.path).
			WithSuggestion("Fix the file by hand or restore it from a backup")
	}
	return records, nil
}

// Encode writes records as a JSON array indented by two spaces.
// Non-ASCII and HTML characters are written literally, and the array is
// followed by a newline.
func Encode(w io.Writer, records []*inventory.Record) error {
	if records == nil {
		records = []*inventory.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Decode reads a JSON array of records. Blank input decodes as no records.
func Decode(r io.Reader) ([]*inventory.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []*inventory.Record{}, nil
	}

	var records []*inventory.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*inventory.Record{}
	}
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("entry %d is null", i)
		}
	}
	return records, nil
}
