package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	kerrors "github.com/matzehuels/keymapfmt/pkg/errors"
	"github.com/matzehuels/keymapfmt/pkg/keymap"
)

var cellCmp = cmp.Comparer(func(a, b keymap.Cell) bool {
	at, aok := a.Text()
	bt, bok := b.Text()
	return at == bt && aok == bok
})

func sample(t *testing.T) *keymap.Keymap {
	t.Helper()
	km, err := keymap.FromSource("[0] = LAYOUT(\nKC_A, KC_B\nLT(1,KC_SPC)\n)\n[1] = FN(\nKC_1, KC_2\nKC_3\n)", keymap.DefaultGridOptions())
	if err != nil {
		t.Fatalf("FromSource: %v", err)
	}
	return km
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sample(t), &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"num": "0"`, `"name": "FN"`, `"LT(1,KC_SPC)"`, "null"} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteJSON() missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"labels"`) {
		t.Error("labels written without WithLabels")
	}
}

func TestWriteJSONLabels(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sample(t), &buf, WithLabels()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"bottom": "L1"`) {
		t.Errorf("WriteJSON() missing humanized label:\n%s", buf.String())
	}
	if _, err := ReadJSON(&buf); err != nil {
		t.Errorf("ReadJSON of labelled export: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	km := sample(t)
	path := filepath.Join(t.TempDir(), "keymap.json")
	if err := ExportJSON(km, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if diff := cmp.Diff(km, got, cellCmp); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"no layers", `{"layers": []}`},
		{"ragged", `{"layers": [{"num": "0", "name": "L", "keys": [["A", "B"], ["C"]]}]}`},
		{"row mismatch", `{"layers": [
			{"num": "0", "name": "L", "keys": [["A", "B"]]},
			{"num": "1", "name": "L", "keys": [["A", "B"], ["C", "D"]]}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.json))
			if !kerrors.Is(err, kerrors.ErrCodeInvalidKeymap) {
				t.Errorf("ReadJSON() error = %v, want INVALID_KEYMAP", err)
			}
		})
	}

	if _, err := ReadJSON(strings.NewReader("{")); err == nil {
		t.Error("ReadJSON() accepted malformed JSON")
	}
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportJSON() accepted a missing file")
	}
}
