// Package keymap builds the canonical keymap model from parsed sources.
//
// A [Keymap] is an ordered list of [Layer] values. Each layer keeps its number
// label and layout name verbatim and holds a rectangular grid of [Cell]s
// produced by [Normalize]: rows are padded to an even length, non-thumb rows
// get gap pairs at their centre, and short rows are centred with gaps.
//
// # Building
//
//	prog, err := syntax.Parse(src)
//	km, err := keymap.Build(prog, keymap.DefaultGridOptions())
//
// Structural failures wrap [ErrNoLayers], [ErrEmptyLayer] or
// [ErrRowCountMismatch] in an INVALID_KEYMAP error and can be matched with
// errors.Is. A failed build never returns a partial keymap.
package keymap

// Keymap is an ordered sequence of layers, in source order.
// It is not modified after Build returns it.
type Keymap struct {
	Layers []Layer `json:"layers"`
}

// Layer is one numbered layout variant.
type Layer struct {
	Num  string   `json:"num"`
	Name string   `json:"name"`
	Keys [][]Cell `json:"keys"`
}

// Rows returns the number of grid rows.
func (l Layer) Rows() int {
	return len(l.Keys)
}

// Cols returns the grid width. All rows of a built layer share it.
func (l Layer) Cols() int {
	if len(l.Keys) == 0 {
		return 0
	}
	return len(l.Keys[0])
}

// KeyCount returns the number of non-gap cells.
func (l Layer) KeyCount() int {
	n := 0
	for _, row := range l.Keys {
		for _, c := range row {
			if !c.IsGap() {
				n++
			}
		}
	}
	return n
}

// Layer returns the layer labelled num.
func (km *Keymap) Layer(num string) (Layer, bool) {
	for _, l := range km.Layers {
		if l.Num == num {
			return l, true
		}
	}
	return Layer{}, false
}

// Rows returns the row count shared by every layer.
func (km *Keymap) Rows() int {
	if len(km.Layers) == 0 {
		return 0
	}
	return km.Layers[0].Rows()
}

// MaxCols returns the widest layer grid.
func (km *Keymap) MaxCols() int {
	n := 0
	for _, l := range km.Layers {
		n = max(n, l.Cols())
	}
	return n
}
