package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/keymapfmt/pkg/keymap"
)

// grid builds a layer grid; "-" stands for a gap.
func grid(rows ...[]string) [][]keymap.Cell {
	out := make([][]keymap.Cell, len(rows))
	for i, r := range rows {
		for _, t := range r {
			if t == "-" {
				out[i] = append(out[i], keymap.Gap())
			} else {
				out[i] = append(out[i], keymap.Key(t))
			}
		}
	}
	return out
}

func TestPrintTwoKeys(t *testing.T) {
	km := &keymap.Keymap{Layers: []keymap.Layer{
		{Num: "0", Name: "LAYOUT", Keys: grid([]string{"KC_A", "KC_B"})},
	}}

	got := Print(km, DefaultOptions())
	want := "[0] = LAYOUT (\n" +
		" KC_A,     KC_B \n" +
		"),\n"
	if got != want {
		t.Errorf("Print() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestPrintGaps(t *testing.T) {
	km := &keymap.Keymap{Layers: []keymap.Layer{
		{Num: "0", Name: "L", Keys: grid(
			[]string{"A", "-", "-", "B"},
			[]string{"-", "C", "D", "-"},
		)},
	}}

	got := Print(km, DefaultOptions())
	want := "[0] = L (\n" +
		" A," + "   " + "     " + "   " + "B ," + "\n" +
		"   " + " C," + "     " + "D " + "   " + "\n" +
		"),\n"
	if got != want {
		t.Errorf("Print() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestPrintLeftAlign(t *testing.T) {
	km := &keymap.Keymap{Layers: []keymap.Layer{
		{Num: "0", Name: "L", Keys: grid(
			[]string{"A", "BB", "CC", "D"},
			[]string{"AAA", "B", "C", "DDD"},
		)},
	}}

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "right justified left half",
			opts: Options{SplitSpace: 1, AlignLayers: true},
			want: "[0] = L (\n" +
				"   A, BB, CC ,D   ,\n" +
				" AAA,  B, C  ,DDD \n" +
				"),\n",
		},
		{
			name: "left align",
			opts: Options{LeftAlign: true, SplitSpace: 1, AlignLayers: true},
			want: "[0] = L (\n" +
				"A   ,BB , CC ,D   ,\n" +
				"AAA ,B  , C  ,DDD \n" +
				"),\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Print(km, tt.opts); got != tt.want {
				t.Errorf("Print() mismatch (-want +got):\n%s", cmp.Diff(tt.want, got))
			}
		})
	}
}

func TestPrintSplitSpace(t *testing.T) {
	for _, split := range []int{0, 1, 5, 9} {
		for _, cols := range []int{2, 4, 6, 8} {
			texts := make([]string, cols)
			for i := range texts {
				texts[i] = "K"
			}
			km := &keymap.Keymap{Layers: []keymap.Layer{
				{Num: "0", Name: "L", Keys: grid(texts, texts)},
			}}

			opts := DefaultOptions()
			opts.SplitSpace = split
			lines := strings.Split(Print(km, opts), "\n")
			centre := cols / 2
			leftWidth := centre * len(" K,")
			for _, line := range lines[1:3] {
				gutter := line[leftWidth:]
				if !strings.HasPrefix(gutter, strings.Repeat(" ", split)+"K") {
					t.Errorf("split=%d cols=%d: line %q has no %d-space gutter after column %d",
						split, cols, line, split, centre-1)
				}
			}
		}
	}
}

func TestMeasure(t *testing.T) {
	km := &keymap.Keymap{Layers: []keymap.Layer{
		{Num: "0", Name: "L", Keys: grid([]string{"A", "BBBB"})},
		{Num: "1", Name: "L", Keys: grid([]string{"CCC", "D", "-", "E"})},
	}}

	aligned := Measure(km, Options{AlignLayers: true})
	if diff := cmp.Diff(Widths{{3, 4}, {3, 4, 0, 1}}, aligned); diff != "" {
		t.Errorf("aligned Measure() mismatch (-want +got):\n%s", diff)
	}

	perLayer := Measure(km, Options{AlignLayers: false})
	if diff := cmp.Diff(Widths{{1, 4}, {3, 1, 0, 1}}, perLayer); diff != "" {
		t.Errorf("per-layer Measure() mismatch (-want +got):\n%s", diff)
	}
}

func TestMeasureWideRunes(t *testing.T) {
	km := &keymap.Keymap{Layers: []keymap.Layer{
		{Num: "0", Name: "L", Keys: grid([]string{"日本", "x"})},
	}}
	if diff := cmp.Diff(Widths{{4, 1}}, Measure(km, DefaultOptions())); diff != "" {
		t.Errorf("Measure() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintRaggedRows(t *testing.T) {
	km := &keymap.Keymap{Layers: []keymap.Layer{
		{Num: "0", Name: "L", Keys: grid(
			[]string{"A", "BB", "C"},
			[]string{"D"},
		)},
	}}

	if diff := cmp.Diff(Widths{{1, 2, 1}}, Measure(km, Options{SplitSpace: 1})); diff != "" {
		t.Errorf("Measure() mismatch (-want +got):\n%s", diff)
	}

	got := Print(km, Options{SplitSpace: 1})
	want := "[0] = L (\n" +
		" A, BB ,C ,\n" +
		"D \n" +
		"),\n"
	if got != want {
		t.Errorf("Print() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestPrintMultipleLayers(t *testing.T) {
	km, err := keymap.FromSource("[0] = L(KC_A, KC_B)\n[1] = L(X, Y)", keymap.DefaultGridOptions())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Fprint(&buf, km, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	want := "[0] = L (\n" +
		" KC_A,     KC_B \n" +
		"),\n" +
		"[1] = L (\n" +
		"    X,     Y    \n" +
		"),\n"
	if got := buf.String(); got != want {
		t.Errorf("Fprint() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}

	perLayer := Print(km, Options{SplitSpace: 5})
	if !strings.Contains(perLayer, " X,     Y \n") {
		t.Errorf("per-layer Print() = %q, want unpadded second layer", perLayer)
	}
}

func TestPrintIsReparsable(t *testing.T) {
	src := `[0] = LAYOUT(
  KC_Q, KC_W, KC_E, KC_R, KC_T,   KC_Y, KC_U, KC_I, KC_O, KC_P,
  KC_A, KC_S, KC_D, KC_F, KC_G,   KC_H, KC_J, KC_K, KC_L, KC_SCLN,
  LT(1,KC_SPC), KC_ENT
)`
	km, err := keymap.FromSource(src, keymap.DefaultGridOptions())
	if err != nil {
		t.Fatal(err)
	}
	out := Print(km, DefaultOptions())
	again, err := keymap.FromSource(out, keymap.GridOptions{})
	if err != nil {
		t.Fatalf("formatted output does not parse: %v\n%s", err, out)
	}
	if got, want := again.Layers[0].KeyCount(), km.Layers[0].KeyCount(); got != want {
		t.Errorf("reparsed key count = %d, want %d", got, want)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("DefaultOptions().Validate() = %v", err)
	}
	if err := (Options{SplitSpace: -1}).Validate(); err == nil {
		t.Error("Validate() with negative split space succeeded")
	}
}
