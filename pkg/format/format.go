// Package format re-serializes a keymap as column-aligned source text.
//
// Printing runs in two phases. [Measure] computes the display width of every
// column, per layer or unified across all layers, and [Print] writes each
// layer block using those widths:
//
//	[0] = LAYOUT (
//	 KC_A,     KC_B ,
//	 KC_C,     KC_D
//	),
//
// Keys left of a row's centre are right-justified (unless LeftAlign is set),
// keys right of it are left-justified, gaps print as blanks without a comma,
// and SplitSpace extra blanks separate the two halves.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/keymapfmt/pkg/keymap"
)

// Default printer settings.
const (
	DefaultLeftAlign   = false
	DefaultSplitSpace  = 5
	DefaultAlignLayers = true
)

// Options configures the printer.
type Options struct {
	// LeftAlign left-justifies keys on the left half too.
	LeftAlign bool
	// SplitSpace is the width of the blank gutter between the two halves.
	SplitSpace int
	// AlignLayers unifies column widths across all layers.
	AlignLayers bool
}

// DefaultOptions returns the default printer settings.
func DefaultOptions() Options {
	return Options{
		LeftAlign:   DefaultLeftAlign,
		SplitSpace:  DefaultSplitSpace,
		AlignLayers: DefaultAlignLayers,
	}
}

// Validate rejects a negative gutter.
func (o Options) Validate() error {
	if o.SplitSpace < 0 {
		return fmt.Errorf("split space must be non-negative, got %d", o.SplitSpace)
	}
	return nil
}

// Widths holds the display width of each column, indexed [layer][column].
type Widths [][]int

// Measure returns the column widths used by Print.
//
// A column's width is the widest key text in it, measured in terminal cells.
// With AlignLayers every layer gets the maximum across all layers; a layer
// that lacks a column contributes 0 to it. Layers are sized by their longest
// row, so grids that were never normalized still print.
func Measure(km *keymap.Keymap, opts Options) Widths {
	widths := make(Widths, len(km.Layers))
	for li, l := range km.Layers {
		n := 0
		for _, row := range l.Keys {
			n = max(n, len(row))
		}
		cols := make([]int, n)
		for _, row := range l.Keys {
			for ci, c := range row {
				if text, ok := c.Text(); ok {
					cols[ci] = max(cols[ci], runewidth.StringWidth(text))
				}
			}
		}
		widths[li] = cols
	}
	if !opts.AlignLayers {
		return widths
	}

	var unified []int
	for _, cols := range widths {
		for ci, w := range cols {
			if ci >= len(unified) {
				unified = append(unified, 0)
			}
			unified[ci] = max(unified[ci], w)
		}
	}
	for li := range widths {
		copy(widths[li], unified)
	}
	return widths
}

// Print returns the formatted keymap.
func Print(km *keymap.Keymap, opts Options) string {
	var b strings.Builder
	write(&b, km, Measure(km, opts), opts)
	return b.String()
}

// Fprint writes the formatted keymap to w.
func Fprint(w io.Writer, km *keymap.Keymap, opts Options) error {
	_, err := io.WriteString(w, Print(km, opts))
	return err
}

func write(b *strings.Builder, km *keymap.Keymap, widths Widths, opts Options) {
	gutter := strings.Repeat(" ", max(opts.SplitSpace, 0))
	for li, l := range km.Layers {
		fmt.Fprintf(b, "[%s] = %s (\n", l.Num, l.Name)
		for ri, row := range l.Keys {
			centre := len(row) / 2
			lastKey := len(row)
			if ri == len(l.Keys)-1 {
				lastKey = lastKeyIndex(row)
			}
			for ci, c := range row {
				w := widths[li][ci] + 1
				text, ok := c.Text()
				switch {
				case !ok:
					b.WriteString(strings.Repeat(" ", w+1))
				case ci < centre && !opts.LeftAlign:
					b.WriteString(runewidth.FillLeft(text, w))
				default:
					b.WriteString(runewidth.FillRight(text, w))
				}
				if ok && ci != lastKey {
					b.WriteByte(',')
				}
				if ci == centre-1 {
					b.WriteString(gutter)
				}
			}
			b.WriteByte('\n')
		}
		b.WriteString(")")
		b.WriteString(",\n")
	}
}

// lastKeyIndex returns the index of the last key cell in row, or -1.
func lastKeyIndex(row []keymap.Cell) int {
	for i := len(row) - 1; i >= 0; i-- {
		if !row[i].IsGap() {
			return i
		}
	}
	return -1
}
