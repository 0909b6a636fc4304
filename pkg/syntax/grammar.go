package syntax

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// keymapLexer tokenizes keymap sources.
//
// Newline collapses a run of line breaks, including blank lines and lines
// holding only a // comment, into a single token because rows are separated by
// line breaks. Block comments and horizontal whitespace are elided.
var keymapLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Newline", Pattern: `(?:[ \t]*(?://[^\n]*)?\r?\n)+`},
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Number", Pattern: `0[xX][0-9A-Fa-f]+|[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[\[\]()=,]`},
})

// The node type names double as production names in Grammar.

// keymap is the grammar root: one or more layer blocks, each optionally
// followed by a comma.
type keymap struct {
	Layers []*layer `parser:"Newline* @@ @@*"`
}

// layer is a single `[num] = NAME( rows )` assignment.
type layer struct {
	Pos lexer.Position

	Num  string `parser:"'[' @(Number | Ident) ']' '='"`
	Name string `parser:"@Ident '(' Newline*"`
	Rows []*row `parser:"@@ ( Newline+ @@ )* Newline* ')' Newline* ( ',' Newline* )?"`
}

// row is one source line of comma separated keys. A trailing comma is allowed.
type row struct {
	Pos lexer.Position

	Keys []*key `parser:"@@ ( ',' @@ )* ','?"`
}

// key is a keycode, or a call when a parenthesized parameter list follows.
type key struct {
	Pos lexer.Position

	Name string   `parser:"@Ident"`
	Args []*param `parser:"( '(' Newline* @@ ( Newline* ',' Newline* @@ )* Newline* ')' )?"`
}

// param is a numeric literal or a nested key expression.
type param struct {
	Number string `parser:"  @Number"`
	Key    *key   `parser:"| @@"`
}

var parserOptions = []participle.Option{
	participle.Lexer(keymapLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
}

var (
	programParser = participle.MustBuild[keymap](parserOptions...)
	keyParser     = participle.MustBuild[key](parserOptions...)
)

// Grammar returns the EBNF of the keymap program grammar.
func Grammar() string {
	return programParser.String()
}
