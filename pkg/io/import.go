package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/keymapfmt/pkg/keymap"
)

// ReadJSON decodes a keymap written by WriteJSON.
//
// The result is validated with keymap.Validate, so structural problems come
// back as INVALID_KEYMAP errors. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*keymap.Keymap, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	km := &keymap.Keymap{Layers: make([]keymap.Layer, len(data.Layers))}
	for i, l := range data.Layers {
		km.Layers[i] = keymap.Layer{Num: l.Num, Name: l.Name, Keys: l.Keys}
	}
	if err := keymap.Validate(km); err != nil {
		return nil, err
	}
	return km, nil
}

// ImportJSON reads a JSON file at path and returns the decoded keymap.
func ImportJSON(path string) (*keymap.Keymap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	km, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return km, nil
}
