// Package syntax parses QMK-style keymap sources.
//
// A source is a sequence of layer blocks:
//
//	[0] = LAYOUT(
//	    KC_Q, KC_W, KC_E,     KC_I, KC_O, KC_P,
//	    LT(1,KC_SPC), KC_ENT
//	),
//
// Rows are separated by line breaks and their keys by commas. A key is either
// a bare identifier or a call whose parameters are numbers or nested keys.
// Line and block comments are allowed wherever whitespace is.
//
// [Parse] returns a [Program] whose key expressions form a closed sum type
// ([KeyCode], [Literal], [FunctionCall]). [Render] turns any expression back
// into its canonical single-line text. Failures are reported as [*SyntaxError].
package syntax

import (
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2/lexer"
)

// Parse parses a complete keymap source.
func Parse(src string) (*Program, error) {
	node, err := programParser.ParseString("", src)
	if err != nil {
		if se := diagnose(src, (*diagnosis).keymap); se != nil {
			return nil, se
		}
		return nil, newSyntaxError(src, err)
	}
	return convertProgram(node), nil
}

// ParseKey parses a single key expression such as "LT(1,KC_SPC)".
// Surrounding whitespace is ignored; error positions still refer to src.
func ParseKey(src string) (Expr, error) {
	trimmed := strings.TrimSpace(src)
	node, err := keyParser.ParseString("", trimmed)
	if err != nil {
		se := diagnose(trimmed, (*diagnosis).key)
		if se == nil {
			se = newSyntaxError(trimmed, err)
		}
		se.shift(src[:len(src)-len(strings.TrimLeftFunc(src, unicode.IsSpace))])
		return nil, se
	}
	return convertKey(node), nil
}

func convertProgram(n *keymap) *Program {
	p := &Program{Blocks: make([]*LayerBlock, 0, len(n.Layers))}
	for _, b := range n.Layers {
		block := &LayerBlock{
			Num:  b.Num,
			Name: b.Name,
			Rows: make([]Row, 0, len(b.Rows)),
			Pos:  position(b.Pos),
		}
		for _, r := range b.Rows {
			row := Row{Keys: make([]Expr, 0, len(r.Keys)), Pos: position(r.Pos)}
			for _, k := range r.Keys {
				row.Keys = append(row.Keys, convertKey(k))
			}
			block.Rows = append(block.Rows, row)
		}
		p.Blocks = append(p.Blocks, block)
	}
	return p
}

func convertKey(n *key) Expr {
	if len(n.Args) == 0 {
		return &KeyCode{Name: n.Name}
	}
	call := &FunctionCall{Name: n.Name, Args: make([]Expr, 0, len(n.Args))}
	for _, a := range n.Args {
		if a.Key != nil {
			call.Args = append(call.Args, convertKey(a.Key))
		} else {
			call.Args = append(call.Args, &Literal{Text: a.Number})
		}
	}
	return call
}

func position(p lexer.Position) Pos {
	return Pos{Line: p.Line, Column: p.Column}
}
