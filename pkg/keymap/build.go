package keymap

import (
	"errors"
	"fmt"

	kerrors "github.com/matzehuels/keymapfmt/pkg/errors"
	"github.com/matzehuels/keymapfmt/pkg/syntax"
)

// Structural failures reported by Build. They arrive wrapped in an
// INVALID_KEYMAP error; match them with errors.Is.
var (
	ErrNoLayers         = errors.New("keymap has no layers")
	ErrEmptyLayer       = errors.New("no rows in a layer")
	ErrRowCountMismatch = errors.New("layers disagree on row count")
	ErrInvalidOptions   = errors.New("invalid grid options")
)

// Build converts a parsed program into a Keymap, normalizing each layer grid.
//
// A nil program is a caller bug and panics.
func Build(p *syntax.Program, opts GridOptions) (*Keymap, error) {
	if p == nil {
		panic("keymap: Build called with nil program")
	}
	if err := opts.Validate(); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidOptions, err, "grid options")
	}
	if len(p.Blocks) == 0 {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidKeymap, ErrNoLayers, "build keymap")
	}

	km := &Keymap{Layers: make([]Layer, 0, len(p.Blocks))}
	for _, b := range p.Blocks {
		if len(b.Rows) == 0 {
			return nil, kerrors.Wrap(kerrors.ErrCodeInvalidKeymap, ErrEmptyLayer, "layer [%s] at line %d", b.Num, b.Pos.Line)
		}
		if first := p.Blocks[0]; len(b.Rows) != len(first.Rows) {
			return nil, kerrors.Wrap(kerrors.ErrCodeInvalidKeymap,
				fmt.Errorf("%w: layer [%s] has %d rows, layer [%s] has %d",
					ErrRowCountMismatch, first.Num, len(first.Rows), b.Num, len(b.Rows)),
				"layer [%s] at line %d", b.Num, b.Pos.Line)
		}

		rows := make([][]string, len(b.Rows))
		for i, r := range b.Rows {
			rows[i] = syntax.RenderRow(r)
		}
		km.Layers = append(km.Layers, Layer{
			Num:  b.Num,
			Name: b.Name,
			Keys: Normalize(rows, opts),
		})
	}
	return km, nil
}

// FromSource parses src and builds its keymap. Syntax errors are wrapped in a
// SYNTAX_ERROR error whose cause is the *syntax.SyntaxError.
func FromSource(src string, opts GridOptions) (*Keymap, error) {
	p, err := syntax.Parse(src)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeSyntax, err, "parse keymap")
	}
	return Build(p, opts)
}

// Validate checks the structural invariants of a keymap that did not come out
// of Build, such as one decoded from JSON: at least one layer, rectangular
// non-empty grids and a shared row count.
func Validate(km *Keymap) error {
	if km == nil || len(km.Layers) == 0 {
		return kerrors.Wrap(kerrors.ErrCodeInvalidKeymap, ErrNoLayers, "validate keymap")
	}
	rows := km.Layers[0].Rows()
	for _, l := range km.Layers {
		if l.Rows() == 0 {
			return kerrors.Wrap(kerrors.ErrCodeInvalidKeymap, ErrEmptyLayer, "layer [%s]", l.Num)
		}
		if l.Rows() != rows {
			return kerrors.Wrap(kerrors.ErrCodeInvalidKeymap,
				fmt.Errorf("%w: layer [%s] has %d rows, layer [%s] has %d",
					ErrRowCountMismatch, km.Layers[0].Num, rows, l.Num, l.Rows()),
				"layer [%s]", l.Num)
		}
		for i, row := range l.Keys {
			if len(row) != l.Cols() {
				return kerrors.New(kerrors.ErrCodeInvalidKeymap,
					"layer [%s] row %d has %d columns, want %d", l.Num, i, len(row), l.Cols())
			}
		}
	}
	return nil
}
