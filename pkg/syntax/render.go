package syntax

import (
	"fmt"
	"strings"
)

// Render returns the canonical text of a key expression: identifiers and
// literals as written, calls as NAME(a,b,...) with no whitespace.
//
// Render is a structural echo of the parsed tokens and never rewrites names.
// It panics on a nil or foreign Expr, which cannot come out of the parser.
func Render(e Expr) string {
	var b strings.Builder
	render(&b, e)
	return b.String()
}

func render(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *KeyCode:
		b.WriteString(e.Name)
	case *Literal:
		b.WriteString(e.Text)
	case *FunctionCall:
		b.WriteString(e.Name)
		b.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			render(b, arg)
		}
		b.WriteByte(')')
	default:
		panic(fmt.Sprintf("syntax: unexpected expression %T", e))
	}
}

// RenderRow renders every key of a row.
func RenderRow(r Row) []string {
	out := make([]string, len(r.Keys))
	for i, k := range r.Keys {
		out[i] = Render(k)
	}
	return out
}
