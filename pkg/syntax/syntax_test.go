package syntax

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Expr
	}{
		{
			name: "keycode",
			src:  "KC_A",
			want: &KeyCode{Name: "KC_A"},
		},
		{
			name: "layer tap",
			src:  "LT(1,KC_SPC)",
			want: &FunctionCall{Name: "LT", Args: []Expr{&Literal{Text: "1"}, &KeyCode{Name: "KC_SPC"}}},
		},
		{
			name: "whitespace and comments",
			src:  "  LT( 1 /* nav */ , KC_SPC )  ",
			want: &FunctionCall{Name: "LT", Args: []Expr{&Literal{Text: "1"}, &KeyCode{Name: "KC_SPC"}}},
		},
		{
			name: "nested",
			src:  "LT(2,LSFT_T(KC_A))",
			want: &FunctionCall{Name: "LT", Args: []Expr{
				&Literal{Text: "2"},
				&FunctionCall{Name: "LSFT_T", Args: []Expr{&KeyCode{Name: "KC_A"}}},
			}},
		},
		{
			name: "hex literal",
			src:  "MT(0x02,KC_ESC)",
			want: &FunctionCall{Name: "MT", Args: []Expr{&Literal{Text: "0x02"}, &KeyCode{Name: "KC_ESC"}}},
		},
		{
			name: "bare identifier parameter",
			src:  "MO(_NAV)",
			want: &FunctionCall{Name: "MO", Args: []Expr{&KeyCode{Name: "_NAV"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.src)
			if err != nil {
				t.Fatalf("ParseKey(%q): %v", tt.src, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseKey(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestParseKeyErrors(t *testing.T) {
	for _, src := range []string{"", "LT(", "LT()", "KC_A KC_B", "1", "LT(1,)"} {
		t.Run(src, func(t *testing.T) {
			_, err := ParseKey(src)
			if err == nil {
				t.Fatalf("ParseKey(%q) succeeded, want error", src)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("ParseKey(%q) error type = %T, want *SyntaxError", src, err)
			}
		})
	}
}

func TestParseKeyErrorPosition(t *testing.T) {
	tests := []struct {
		src          string
		line, column int
		unexpected   string
		expected     []string
	}{
		{"LT(1,)", 1, 6, ")", []string{"<newline>", "<number>", "<ident>"}},
		{"  LT(1,)", 1, 8, ")", []string{"<newline>", "<number>", "<ident>"}},
		{"\n  KC_A KC_B", 2, 8, "KC_B", []string{`"("`}},
		{"\t1", 1, 2, "1", []string{"<ident>"}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := ParseKey(tt.src)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("ParseKey(%q) error = %v, want *SyntaxError", tt.src, err)
			}
			if se.Line != tt.line || se.Column != tt.column {
				t.Errorf("position = (%d, %d), want (%d, %d)", se.Line, se.Column, tt.line, tt.column)
			}
			if len(se.Unexpected) != 1 || se.Unexpected[0] != tt.unexpected {
				t.Errorf("Unexpected = %q, want [%q]", se.Unexpected, tt.unexpected)
			}
			if diff := cmp.Diff(tt.expected, se.Expected); diff != "" {
				t.Errorf("Expected mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		expr Expr
		want string
	}{
		{&KeyCode{Name: "KC_A"}, "KC_A"},
		{&Literal{Text: "0x10"}, "0x10"},
		{&FunctionCall{Name: "LT", Args: []Expr{&Literal{Text: "1"}, &KeyCode{Name: "KC_SPC"}}}, "LT(1,KC_SPC)"},
		{&FunctionCall{Name: "A", Args: []Expr{&FunctionCall{Name: "B", Args: []Expr{&KeyCode{Name: "C"}}}}}, "A(B(C))"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Render(tt.expr); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderRoundTrip(t *testing.T) {
	inputs := []string{
		"KC_A",
		"LT(1,KC_SPC)",
		"LT( 1 , KC_SPC )",
		"LCTL_T(LSFT_T(KC_ESC))",
		"TD(  0x1F )",
		"F(X(Y(Z(1,2,3))),W)",
	}

	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			e, err := ParseKey(src)
			if err != nil {
				t.Fatalf("ParseKey(%q): %v", src, err)
			}
			first := Render(e)
			again, err := ParseKey(first)
			if err != nil {
				t.Fatalf("ParseKey(%q) of rendered text: %v", first, err)
			}
			if second := Render(again); second != first {
				t.Errorf("render not idempotent: %q then %q", first, second)
			}
			if strings.ContainsAny(first, " \t\n") {
				t.Errorf("Render() = %q, contains whitespace", first)
			}
		})
	}
}

func TestParse(t *testing.T) {
	src := `/* header */
[0] = LAYOUT(
    KC_Q, KC_W,   KC_O, KC_P,   // top row
    KC_A, LT(1,KC_S),
    KC_SPC
),
[_FN] = LAYOUT_split(KC_1, KC_2,)
`
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(p.Blocks))
	}

	b := p.Blocks[0]
	if b.Num != "0" || b.Name != "LAYOUT" {
		t.Errorf("block 0 = [%s] %s, want [0] LAYOUT", b.Num, b.Name)
	}
	if b.Pos.Line != 2 {
		t.Errorf("block 0 line = %d, want 2", b.Pos.Line)
	}

	var rows [][]string
	for _, r := range b.Rows {
		rows = append(rows, RenderRow(r))
	}
	want := [][]string{
		{"KC_Q", "KC_W", "KC_O", "KC_P"},
		{"KC_A", "LT(1,KC_S)"},
		{"KC_SPC"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	fn := p.Blocks[1]
	if fn.Num != "_FN" || fn.Name != "LAYOUT_split" {
		t.Errorf("block 1 = [%s] %s, want [_FN] LAYOUT_split", fn.Num, fn.Name)
	}
	if len(fn.Rows) != 1 || len(fn.Rows[0].Keys) != 2 {
		t.Errorf("block 1 rows = %v, want one row of two keys", fn.Rows)
	}
}

func TestParseSeparators(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		blocks int
		rows   []int
	}{
		{"no comma between blocks", "[0] = L(KC_A)\n[1] = L(KC_B)", 2, []int{1, 1}},
		{"comma between blocks", "[0] = L(KC_A), [1] = L(KC_B),", 2, []int{1, 1}},
		{"blank lines between rows", "[0] = L(\n\nKC_A,\n\n  // gap\n\nKC_B\n\n)", 1, []int{2}},
		{"block comment between rows", "[0] = L(KC_A\n/* x */\nKC_B)", 1, []int{2}},
		{"crlf line endings", "[0] = L(\r\nKC_A, KC_B,\r\nKC_C\r\n)\r\n", 1, []int{2}},
		{"call spanning lines", "[0] = L(LT(1,\n KC_A), KC_B)", 1, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(p.Blocks) != tt.blocks {
				t.Fatalf("len(Blocks) = %d, want %d", len(p.Blocks), tt.blocks)
			}
			for i, n := range tt.rows {
				if got := len(p.Blocks[i].Rows); got != n {
					t.Errorf("block %d rows = %d, want %d", i, got, n)
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		line       int
		column     int
		unexpected string
		expected   []string
	}{
		{
			name: "missing separator", src: "[0] = LAYOUT(KC_A KC_B)",
			line: 1, column: 19, unexpected: "KC_B",
			expected: []string{`"("`, `","`, "<newline>", `")"`},
		},
		{
			name: "missing separator on a later row", src: "[0] = L(\nKC_A, KC_B\nKC_C KC_D\n)",
			line: 3, column: 6, unexpected: "KC_D",
			expected: []string{`"("`, `","`, "<newline>", `")"`},
		},
		{
			name: "unclosed block", src: "[0] = LAYOUT(\n  KC_A,\n",
			line: 3, column: 1, unexpected: endOfInput,
			expected: []string{"<newline>", "<ident>", `")"`},
		},
		{
			name: "bad character", src: "[0] = LAYOUT(\n  KC_A, @\n)",
			line: 2, column: 9, unexpected: "@",
		},
		{
			name: "missing equals", src: "[0] LAYOUT(KC_A)",
			line: 1, column: 5, unexpected: "LAYOUT",
			expected: []string{`"="`},
		},
		{
			name: "missing equals in a later block", src: "[0] = L(KC_A)\n[1] L(KC_B)",
			line: 2, column: 5, unexpected: "L",
			expected: []string{`"="`},
		},
		{
			name: "empty layer", src: "[0] = LAYOUT()",
			line: 1, column: 14, unexpected: ")",
			expected: []string{"<newline>", "<ident>"},
		},
		{
			name: "empty parameter", src: "[0] = L(KC_A, LT(1,))",
			line: 1, column: 20, unexpected: ")",
			expected: []string{"<newline>", "<number>", "<ident>"},
		},
		{
			name: "bad layer label", src: "[(] = L(KC_A)",
			line: 1, column: 2, unexpected: "(",
			expected: []string{"<number>", "<ident>"},
		},
		{
			name: "trailing garbage", src: "[0] = L(KC_A)\nKC_B",
			line: 2, column: 1, unexpected: "KC_B",
			expected: []string{"<newline>", `","`, `"["`},
		},
		{
			name: "empty source", src: "\n\n",
			line: 3, column: 1, unexpected: endOfInput,
			expected: []string{"<newline>", `"["`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error type = %T, want *SyntaxError", err)
			}
			if se.Line != tt.line || se.Column != tt.column {
				t.Errorf("position = (%d, %d), want (%d, %d)", se.Line, se.Column, tt.line, tt.column)
			}
			if len(se.Unexpected) != 1 || se.Unexpected[0] != tt.unexpected {
				t.Errorf("Unexpected = %q, want [%q]", se.Unexpected, tt.unexpected)
			}
			if tt.expected != nil {
				if diff := cmp.Diff(tt.expected, se.Expected); diff != "" {
					t.Errorf("Expected mismatch (-want +got):\n%s", diff)
				}
			}
			if !strings.HasPrefix(se.Error(), "Parsing error at (") {
				t.Errorf("Error() = %q, want diagnostic prefix", se.Error())
			}
		})
	}
}

func TestParseErrorDiagnostic(t *testing.T) {
	_, err := Parse("[0] = L(KC_A, LT(1,))")
	want := `Parsing error at (1, 20) (expected <newline> or <number> or <ident>) (unexpected ")")`
	if err == nil || err.Error() != want {
		t.Errorf("Parse error = %v, want %s", err, want)
	}
}

func TestDiagnostic(t *testing.T) {
	tests := []struct {
		err  SyntaxError
		want string
	}{
		{
			SyntaxError{Line: 3, Column: 9},
			"Parsing error at (3, 9)",
		},
		{
			SyntaxError{Line: 1, Column: 2, Expected: []string{`","`, `")"`}, Unexpected: []string{"KC_B"}},
			`Parsing error at (1, 2) (expected "," or ")") (unexpected "KC_B")`,
		},
		{
			SyntaxError{Line: 4, Column: 1, Unexpected: []string{endOfInput}},
			`Parsing error at (4, 1) (unexpected "end of input")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Diagnostic(); got != tt.want {
				t.Errorf("Diagnostic() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpectations(t *testing.T) {
	tests := []struct {
		msg  string
		want []string
	}{
		{`unexpected token "KC_B" (expected ")")`, []string{`")"`}},
		{`unexpected token "," (expected "," | ")")`, []string{`","`, `")"`}},
		{`unexpected token "KC_D" (expected ")" <newline>* ("," <newline>*)?)`, []string{`")"`}},
		{`unexpected token "L" (expected "=" <ident> "(" <newline>* Row (<newline>+ Row)* ")")`, []string{`"="`}},
		{`unexpected token ")" (expected Param | "," Param)`, []string{"<number>", "<ident>", `","`}},
		{`unexpected token "(" (expected (<newline>+ Row)* | ")")`, []string{"<newline>", `")"`}},
		{`unexpected token "x"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, expectations(tt.msg)); diff != "" {
				t.Errorf("expectations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGrammar(t *testing.T) {
	g := Grammar()
	for _, want := range []string{"Keymap = ", "Layer = ", "Row = ", "Key = ", "Param = "} {
		if !strings.Contains(g, want) {
			t.Errorf("Grammar() missing production %q:\n%s", want, g)
		}
	}
	if strings.Contains(g, "Node") {
		t.Errorf("Grammar() leaks Go type names:\n%s", g)
	}
}
