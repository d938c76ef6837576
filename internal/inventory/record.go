// Package inventory defines the inventory record, the ordered in-memory
// collection that owns records for a session, and the mutations on it.
package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Record is a single inventory entry.
type Record struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Qty      int    `json:"qty"`
	Location string `json:"location"`
}

// rawRecord accepts the looser shapes found in hand-edited files.
type rawRecord struct {
	ID       json.RawMessage `json:"id"`
	Name     *string         `json:"name"`
	Category *string         `json:"category"`
	Qty      json.RawMessage `json:"qty"`
	Location *string         `json:"location"`
}

// UnmarshalJSON coerces numeric ids to their string form and accepts
// quantities written as numeric strings.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := coerceID(raw.ID)
	if err != nil {
		return err
	}
	qty, err := coerceQty(raw.Qty)
	if err != nil {
		return fmt.Errorf("record %q: %w", id, err)
	}

	*r = Record{
		ID:       id,
		Name:     deref(raw.Name),
		Category: deref(raw.Category),
		Qty:      qty,
		Location: deref(raw.Location),
	}
	return nil
}

// NewID returns a short generated identifier for records added without one.
func NewID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func coerceID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	default:
		return "", fmt.Errorf("id must be a string or number, got %s", string(raw))
	}
}

func coerceQty(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("qty must be an integer, got %q", s)
		}
		return n, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("qty must be an integer, got %s", string(raw))
	}
	return n, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
