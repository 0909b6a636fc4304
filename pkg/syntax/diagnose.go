package syntax

import (
	"slices"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Terminal names as they appear in SyntaxError.Expected.
const (
	expectNewline = "<newline>"
	expectIdent   = "<ident>"
	expectNumber  = "<number>"
)

var (
	symbols       = keymapLexer.Symbols()
	newlineToken  = symbols["Newline"]
	numberToken   = symbols["Number"]
	identToken    = symbols["Ident"]
	punctToken    = symbols["Punct"]
	elidedSymbols = []lexer.TokenType{symbols["Whitespace"], symbols["Comment"]}
)

// diagnosis walks the token stream of a rejected source along the grammar and
// stops at the first token no rule accepts. Unlike the backtracking parser it
// never retreats, so the failure lands on the offending token and expected
// collects every terminal that was tried there.
type diagnosis struct {
	tokens   []lexer.Token
	pos      int
	expected []string
}

// diagnose locates the first syntax error in src. rule is the entry point:
// (*diagnosis).keymap for a full source, (*diagnosis).key for one expression.
// It returns nil when src cannot be tokenized or when the walk accepts it.
func diagnose(src string, rule func(*diagnosis) *SyntaxError) *SyntaxError {
	lex, err := keymapLexer.LexString("", src)
	if err != nil {
		return nil
	}
	all, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil
	}
	d := &diagnosis{tokens: make([]lexer.Token, 0, len(all))}
	for _, t := range all {
		if !slices.Contains(elidedSymbols, t.Type) {
			d.tokens = append(d.tokens, t)
		}
	}
	if se := rule(d); se != nil {
		return se
	}
	if !d.peek().EOF() {
		return d.fail()
	}
	return nil
}

func (d *diagnosis) peek() lexer.Token {
	if d.pos < len(d.tokens) {
		return d.tokens[d.pos]
	}
	return lexer.EOFToken(lexer.Position{})
}

// at reports whether the current token is the terminal want. A miss records
// want as expected at this position.
func (d *diagnosis) at(want string) bool {
	t := d.peek()
	var ok bool
	switch want {
	case expectNewline:
		ok = t.Type == newlineToken
	case expectIdent:
		ok = t.Type == identToken
	case expectNumber:
		ok = t.Type == numberToken
	default:
		ok = t.Type == punctToken && `"`+t.Value+`"` == want
	}
	if !ok && !slices.Contains(d.expected, want) {
		d.expected = append(d.expected, want)
	}
	return ok
}

// accept consumes the current token if it is want.
func (d *diagnosis) accept(want string) bool {
	if !d.at(want) {
		return false
	}
	d.pos++
	d.expected = d.expected[:0]
	return true
}

func (d *diagnosis) expect(want string) *SyntaxError {
	if d.accept(want) {
		return nil
	}
	return d.fail()
}

func (d *diagnosis) skipNewlines() {
	for d.accept(expectNewline) {
	}
}

func (d *diagnosis) fail() *SyntaxError {
	t := d.peek()
	se := &SyntaxError{
		Line:     max(t.Pos.Line, 1),
		Column:   max(t.Pos.Column, 1),
		Expected: slices.Clone(d.expected),
	}
	if t.EOF() {
		se.Unexpected = []string{endOfInput}
	} else {
		se.Unexpected = []string{t.Value}
	}
	se.Message = "unexpected " + strconv.Quote(se.Unexpected[0])
	return se
}

// keymap: Newline* layer layer*
func (d *diagnosis) keymap() *SyntaxError {
	d.skipNewlines()
	if se := d.layer(); se != nil {
		return se
	}
	for d.at(`"["`) {
		if se := d.layer(); se != nil {
			return se
		}
	}
	return nil
}

// layer: "[" (Number | Ident) "]" "=" Ident "(" rows ")" Newline* ("," Newline*)?
func (d *diagnosis) layer() *SyntaxError {
	if se := d.expect(`"["`); se != nil {
		return se
	}
	if !d.accept(expectNumber) {
		if se := d.expect(expectIdent); se != nil {
			return se
		}
	}
	for _, want := range []string{`"]"`, `"="`, expectIdent, `"("`} {
		if se := d.expect(want); se != nil {
			return se
		}
	}
	d.skipNewlines()
	if se := d.row(); se != nil {
		return se
	}
	for d.accept(expectNewline) {
		d.skipNewlines()
		if !d.at(expectIdent) {
			break
		}
		if se := d.row(); se != nil {
			return se
		}
	}
	if se := d.expect(`")"`); se != nil {
		return se
	}
	d.skipNewlines()
	if d.accept(`","`) {
		d.skipNewlines()
	}
	return nil
}

// row: key ("," key)* ","?
func (d *diagnosis) row() *SyntaxError {
	if se := d.key(); se != nil {
		return se
	}
	for d.accept(`","`) {
		if !d.at(expectIdent) {
			return nil
		}
		if se := d.key(); se != nil {
			return se
		}
	}
	return nil
}

// key: Ident ("(" param ("," param)* ")")? with newlines allowed inside the
// parentheses.
func (d *diagnosis) key() *SyntaxError {
	if se := d.expect(expectIdent); se != nil {
		return se
	}
	if !d.accept(`"("`) {
		return nil
	}
	d.skipNewlines()
	if se := d.param(); se != nil {
		return se
	}
	for {
		d.skipNewlines()
		if !d.accept(`","`) {
			break
		}
		d.skipNewlines()
		if se := d.param(); se != nil {
			return se
		}
	}
	return d.expect(`")"`)
}

// param: Number | key
func (d *diagnosis) param() *SyntaxError {
	if d.accept(expectNumber) {
		return nil
	}
	return d.key()
}
