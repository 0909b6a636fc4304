package syntax

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
)

// SyntaxError reports source text that does not match the grammar.
type SyntaxError struct {
	Line   int
	Column int

	// Expected lists what the grammar would have accepted at the position.
	Expected []string
	// Unexpected holds the offending token, if one was found.
	Unexpected []string

	// Message is the underlying parser message.
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return e.Diagnostic()
}

// Diagnostic renders the error on a single line, for example:
//
//	Parsing error at (3, 9) (expected "," or ")") (unexpected "KC_B")
func (e *SyntaxError) Diagnostic() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Parsing error at (%d, %d)", e.Line, e.Column)
	if len(e.Expected) > 0 {
		b.WriteString(" (expected ")
		b.WriteString(strings.Join(e.Expected, " or "))
		b.WriteByte(')')
	}
	if len(e.Unexpected) > 0 {
		quoted := make([]string, len(e.Unexpected))
		for i, u := range e.Unexpected {
			quoted[i] = fmt.Sprintf("%q", u)
		}
		b.WriteString(" (unexpected ")
		b.WriteString(strings.Join(quoted, ", "))
		b.WriteByte(')')
	}
	return b.String()
}

const endOfInput = "end of input"

func newSyntaxError(src string, err error) *SyntaxError {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return &SyntaxError{Line: 1, Column: 1, Message: err.Error()}
	}

	pos := perr.Position()
	se := &SyntaxError{
		Line:     max(pos.Line, 1),
		Column:   max(pos.Column, 1),
		Message:  perr.Message(),
		Expected: expectations(perr.Message()),
	}

	var tokErr *participle.UnexpectedTokenError
	switch {
	case errors.As(err, &tokErr):
		if tokErr.Unexpected.EOF() {
			se.Unexpected = []string{endOfInput}
		} else {
			se.Unexpected = []string{tokErr.Unexpected.Value}
		}
	case pos.Offset >= 0 && pos.Offset < len(src):
		r, _ := utf8.DecodeRuneInString(src[pos.Offset:])
		se.Unexpected = []string{string(r)}
	case pos.Offset >= len(src):
		se.Unexpected = []string{endOfInput}
	}
	return se
}

// shift moves a position computed on text that had prefix cut from its front
// back onto the original text.
func (e *SyntaxError) shift(prefix string) {
	if prefix == "" {
		return
	}
	if e.Line == 1 {
		last := prefix[strings.LastIndex(prefix, "\n")+1:]
		e.Column += utf8.RuneCountInString(last)
	}
	e.Line += strings.Count(prefix, "\n")
}

// firstTerminals maps production names to the terminals they can start with.
var firstTerminals = map[string][]string{
	"Keymap": {expectNewline, `"["`},
	"Layer":  {`"["`},
	"Row":    {expectIdent},
	"Key":    {expectIdent},
	"Param":  {expectNumber, expectIdent},
}

// expectations extracts the alternatives of a trailing "(expected ...)" clause
// and reduces each one to the terminals it starts with.
func expectations(msg string) []string {
	const marker = "(expected "
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return nil
	}
	body := strings.TrimSpace(strings.TrimSuffix(msg[i+len(marker):], ")"))

	var out []string
	for _, alt := range splitAlternatives(body) {
		for _, t := range leadingTerminals(alt) {
			if !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// splitAlternatives splits an EBNF expression on the "|" separators that are
// outside groups and quotes.
func splitAlternatives(expr string) []string {
	var (
		alts   []string
		depth  int
		quoted bool
		start  int
	)
	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == '|' && depth == 0:
			alts = append(alts, expr[start:i])
			start = i + 1
		}
	}
	return append(alts, expr[start:])
}

// leadingTerminals returns the terminals an EBNF alternative starts with.
func leadingTerminals(alt string) []string {
	alt = strings.TrimLeft(alt, " \t([{")
	switch {
	case alt == "":
		return nil
	case alt[0] == '"':
		if end := strings.IndexByte(alt[1:], '"'); end >= 0 {
			return []string{alt[:end+2]}
		}
		return []string{alt}
	case alt[0] == '<':
		if end := strings.IndexByte(alt, '>'); end >= 0 {
			return []string{alt[:end+1]}
		}
		return nil
	}
	name := alt
	if end := strings.IndexFunc(alt, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}); end >= 0 {
		name = alt[:end]
	}
	return firstTerminals[name]
}
