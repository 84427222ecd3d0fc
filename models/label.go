package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Label is an organisational tag attached to notes. Labels are independent of
// any particular note; the many-to-many relation lives in Note.Labels.
type Label struct {
	// ID is the label identifier. Stored as a string; the server and older
	// clients emitted numeric ids, newly created labels use UUIDs.
	ID string `json:"id"`

	// Name is the user-visible label text.
	Name string `json:"name"`

	// Color is a display hint (hex color string such as "#3b82f6").
	Color string `json:"color,omitempty"`
}

// UnmarshalJSON accepts both string and numeric label ids. Older server
// responses carry timestamp-derived numbers, newer ones strings; both are
// normalised to the string form here so the rest of the client never cares.
func (l *Label) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    json.RawMessage `json:"id"`
		Name  string          `json:"name"`
		Color string          `json:"color"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode label: %w", err)
	}

	l.Name = raw.Name
	l.Color = raw.Color
	l.ID = ""

	if len(raw.ID) == 0 || string(raw.ID) == "null" {
		return nil
	}
	if raw.ID[0] == '"' {
		var s string
		if err := json.Unmarshal(raw.ID, &s); err != nil {
			return fmt.Errorf("decode label id: %w", err)
		}
		l.ID = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(raw.ID, &n); err != nil {
		return fmt.Errorf("decode label id: %w", err)
	}
	l.ID = n.String()
	return nil
}

// NumericID returns the label id as int64 for servers that expect numbers.
// Returns false if the id is not numeric (a UUID-based local label).
func (l Label) NumericID() (int64, bool) {
	n, err := strconv.ParseInt(l.ID, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
