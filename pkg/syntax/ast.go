package syntax

// Pos is a 1-based source position.
type Pos struct {
	Line   int
	Column int
}

// Expr is a parsed key expression. The set of implementations is closed:
// [*KeyCode], [*Literal] and [*FunctionCall].
type Expr interface {
	expr()
}

// KeyCode is a bare identifier such as KC_A.
type KeyCode struct {
	Name string
}

// Literal is a numeric parameter, kept verbatim (for example 1 or 0x10).
type Literal struct {
	Text string
}

// FunctionCall is an identifier applied to one or more parameters, for
// example LT(1,KC_SPC). Args keep their source order.
type FunctionCall struct {
	Name string
	Args []Expr
}

func (*KeyCode) expr()      {}
func (*Literal) expr()      {}
func (*FunctionCall) expr() {}

// Program is a parsed keymap source.
type Program struct {
	Blocks []*LayerBlock
}

// LayerBlock is one `[num] = name(...)` assignment. Num and Name are verbatim
// source tokens; Num is a label and need not be numeric.
type LayerBlock struct {
	Num  string
	Name string
	Rows []Row
	Pos  Pos
}

// Row is one source line of keys.
type Row struct {
	Keys []Expr
	Pos  Pos
}
