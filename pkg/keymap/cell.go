package keymap

import (
	"encoding/json"
)

// Cell is one slot of a layer grid: either a key or a structural gap.
// The zero value is a gap.
type Cell struct {
	text  string
	isKey bool
}

// Key returns a cell holding the canonical text of a key expression.
func Key(text string) Cell {
	return Cell{text: text, isKey: true}
}

// Gap returns an empty grid slot.
func Gap() Cell {
	return Cell{}
}

// Text returns the key text and true, or "" and false for a gap.
func (c Cell) Text() (string, bool) {
	return c.text, c.isKey
}

// IsGap reports whether the cell carries no key.
func (c Cell) IsGap() bool {
	return !c.isKey
}

// String returns the key text, or "" for a gap.
func (c Cell) String() string {
	return c.text
}

// MarshalJSON encodes a key as a JSON string and a gap as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.isKey {
		return []byte("null"), nil
	}
	return json.Marshal(c.text)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*c = Gap()
	} else {
		*c = Key(*s)
	}
	return nil
}
