package layergraph

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/keymapfmt/pkg/keymap"
)

const source = `
[0] = LAYOUT(
    KC_A, MO(1),
    LT(2,KC_SPC), TG(7)
)
[1] = LAYOUT(
    TO(0), KC_B,
    KC_C, KC_D
)
[2] = LAYOUT(
    KC_E, OSL(1),
    LM(0,MOD_LSFT), KC_F
)
`

func build(t *testing.T) *keymap.Keymap {
	t.Helper()
	km, err := keymap.FromSource(source, keymap.DefaultGridOptions())
	if err != nil {
		t.Fatalf("FromSource: %v", err)
	}
	return km
}

func TestEdges(t *testing.T) {
	want := []Edge{
		{From: "0", To: "1", Key: "MO(1)", Kind: "MO"},
		{From: "0", To: "2", Key: "LT(2,KC_SPC)", Kind: "LT"},
		{From: "1", To: "0", Key: "TO(0)", Kind: "TO"},
		{From: "2", To: "1", Key: "OSL(1)", Kind: "OSL"},
		{From: "2", To: "0", Key: "LM(0,MOD_LSFT)", Kind: "LM"},
	}
	if diff := cmp.Diff(want, Edges(build(t))); diff != "" {
		t.Errorf("Edges() mismatch (-want +got):\n%s", diff)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(build(t))
	for _, want := range []string{
		"digraph layers {",
		`"0" [label="[0] LAYOUT"];`,
		`"0" -> "2" [label="LT ␣", tooltip="LT(2,KC_SPC)"];`,
		`"1" -> "0"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"7"`) {
		t.Error("ToDOT() references a layer that does not exist")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(build(t)))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(svg)), "<") || !strings.Contains(string(svg), "<svg") {
		t.Errorf("RenderSVG() did not return SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %q, want %q", got, want)
	}

	plain := []byte("<svg/>")
	if got := normalizeViewBox(plain); string(got) != "<svg/>" {
		t.Errorf("normalizeViewBox() changed a document without viewBox: %q", got)
	}
}
