// Package humanize maps raw key expressions to display labels.
//
// A [Label] has up to three lines. Plain keycodes go through a glyph table
// (arrows, enter, backspace and so on) or lose their KC_ prefix; layer taps
// and mod-taps show the tap key in the middle and the hold action at the
// bottom. Anything unrecognized, including text that does not parse, is shown
// verbatim. Humanize never fails.
package humanize

import (
	"strings"

	"github.com/matzehuels/keymapfmt/pkg/syntax"
)

// Label is the text drawn on a key cap.
type Label struct {
	Top    string `json:"top,omitempty"`
	Middle string `json:"middle"`
	Bottom string `json:"bottom,omitempty"`
}

// String joins the non-empty lines with spaces.
func (l Label) String() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{l.Top, l.Middle, l.Bottom} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

var glyphs = map[string]Label{
	"KC_UP":    {Middle: "↑"},
	"KC_DOWN":  {Middle: "↓"},
	"KC_LEFT":  {Middle: "←"},
	"KC_RGHT":  {Middle: "→"},
	"KC_RIGHT": {Middle: "→"},
	"KC_NO":    {Middle: ""},
	"XXXXXXX":  {Middle: ""},
	"KC_TRNS":  {Middle: "▽"},
	"_______":  {Middle: "▽"},
	"KC_DOT":   {Top: ">", Middle: "."},
	"KC_COMM":  {Top: "<", Middle: ","},
	"KC_SLSH":  {Top: "?", Middle: "/"},
	"KC_BSLS":  {Top: "|", Middle: "\\"},
	"KC_SCLN":  {Top: ":", Middle: ";"},
	"KC_QUOTE": {Top: "\"", Middle: "'"},
	"KC_QUOT":  {Top: "\"", Middle: "'"},
	"KC_MINS":  {Top: "_", Middle: "-"},
	"KC_EQL":   {Top: "+", Middle: "="},
	"KC_GRV":   {Top: "~", Middle: "`"},
	"KC_LBRC":  {Top: "{", Middle: "["},
	"KC_RBRC":  {Top: "}", Middle: "]"},
	"KC_ENT":   {Middle: "↵"},
	"KC_BSPC":  {Middle: "⌫"},
	"KC_SPC":   {Middle: "␣"},
	"KC_TAB":   {Middle: "⇥"},
	"KC_DEL":   {Middle: "⌦"},
	"KC_ESC":   {Middle: "Esc"},
	"KC_1":     {Top: "!", Middle: "1"},
	"KC_2":     {Top: "@", Middle: "2"},
	"KC_3":     {Top: "#", Middle: "3"},
	"KC_4":     {Top: "$", Middle: "4"},
	"KC_5":     {Top: "%", Middle: "5"},
	"KC_6":     {Top: "^", Middle: "6"},
	"KC_7":     {Top: "&", Middle: "7"},
	"KC_8":     {Top: "*", Middle: "8"},
	"KC_9":     {Top: "(", Middle: "9"},
	"KC_0":     {Top: ")", Middle: "0"},
}

// layerActions are single-argument calls whose argument is a layer.
var layerActions = map[string]bool{
	"MO":  true,
	"TG":  true,
	"TO":  true,
	"OSL": true,
	"TT":  true,
	"DF":  true,
}

// Humanize returns the display label of a key expression.
func Humanize(code string) Label {
	e, err := syntax.ParseKey(code)
	if err != nil {
		return Label{Middle: code}
	}
	return Expr(e)
}

// Expr returns the display label of a parsed key expression.
func Expr(e syntax.Expr) Label {
	switch e := e.(type) {
	case *syntax.KeyCode:
		return keycode(e.Name)
	case *syntax.FunctionCall:
		return call(e)
	default:
		return Label{Middle: syntax.Render(e)}
	}
}

func keycode(name string) Label {
	if l, ok := glyphs[name]; ok {
		return l
	}
	if rest, ok := strings.CutPrefix(name, "KC_"); ok {
		return Label{Middle: rest}
	}
	return Label{Middle: name}
}

func call(c *syntax.FunctionCall) Label {
	switch {
	case c.Name == "LT" && len(c.Args) == 2:
		l := Expr(c.Args[1])
		l.Bottom = "L" + syntax.Render(c.Args[0])
		return l
	case c.Name == "MT" && len(c.Args) == 2:
		l := Expr(c.Args[1])
		l.Bottom = strings.TrimPrefix(syntax.Render(c.Args[0]), "MOD_")
		return l
	case strings.HasSuffix(c.Name, "_T") && len(c.Args) == 1:
		l := Expr(c.Args[0])
		l.Bottom = strings.TrimSuffix(c.Name, "_T")
		return l
	case layerActions[c.Name] && len(c.Args) == 1:
		return Label{Middle: "L" + syntax.Render(c.Args[0]), Bottom: c.Name}
	}
	return Label{Middle: syntax.Render(c)}
}
