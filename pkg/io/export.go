package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/keymapfmt/pkg/humanize"
	"github.com/matzehuels/keymapfmt/pkg/keymap"
)

type document struct {
	Layers []layer `json:"layers"`
}

type layer struct {
	Num    string              `json:"num"`
	Name   string              `json:"name"`
	Keys   [][]keymap.Cell     `json:"keys"`
	Labels [][]*humanize.Label `json:"labels,omitempty"`
}

// Option configures export.
type Option func(*exporter)

type exporter struct {
	labels bool
}

// WithLabels adds a grid of display labels next to every layer's keys.
func WithLabels() Option { return func(e *exporter) { e.labels = true } }

// WriteJSON encodes km as indented JSON and writes it to w.
func WriteJSON(km *keymap.Keymap, w io.Writer, opts ...Option) error {
	var e exporter
	for _, opt := range opts {
		opt(&e)
	}

	out := document{Layers: make([]layer, len(km.Layers))}
	for i, l := range km.Layers {
		out.Layers[i] = layer{Num: l.Num, Name: l.Name, Keys: l.Keys}
		if e.labels {
			out.Layers[i].Labels = labels(l)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func labels(l keymap.Layer) [][]*humanize.Label {
	grid := make([][]*humanize.Label, len(l.Keys))
	for i, row := range l.Keys {
		grid[i] = make([]*humanize.Label, len(row))
		for j, c := range row {
			if text, ok := c.Text(); ok {
				label := humanize.Humanize(text)
				grid[i][j] = &label
			}
		}
	}
	return grid
}

// ExportJSON writes km to a JSON file at path.
func ExportJSON(km *keymap.Keymap, path string, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(km, f, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
