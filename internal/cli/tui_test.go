package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/keymapfmt/pkg/keymap"
)

func testKeymap(t *testing.T) *keymap.Keymap {
	t.Helper()
	km, err := keymap.FromSource(twoLayers, keymap.DefaultGridOptions())
	if err != nil {
		t.Fatal(err)
	}
	return km
}

func press(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ = m.Update(msg)
	return m
}

func TestLayerViewNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"next", []string{"right"}, 1},
		{"wraps forward", []string{"right", "tab"}, 0},
		{"wraps backward", []string{"left"}, 1},
		{"vim keys", []string{"l", "h"}, 0},
		{"end", []string{"G"}, 1},
		{"home", []string{"G", "g"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = NewLayerViewModel(testKeymap(t), false)
			for _, k := range tt.keys {
				m = press(m, k)
			}
			if got := m.(LayerViewModel).Index; got != tt.want {
				t.Errorf("Index = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLayerViewQuit(t *testing.T) {
	m := NewLayerViewModel(testKeymap(t), false)
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%q did not return a command", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q did not quit", msg.String())
		}
	}
}

func TestLayerViewView(t *testing.T) {
	var m tea.Model = NewLayerViewModel(testKeymap(t), false)
	view := m.View()
	if !strings.Contains(view, "[0] LAYOUT") || !strings.Contains(view, "KC_A") {
		t.Errorf("view = %s", view)
	}
	if !strings.Contains(view, "[1/2]") {
		t.Error("view does not show the layer position")
	}

	m = press(m, "right")
	m = press(m, "u")
	view = m.View()
	if !strings.Contains(view, "[1] LAYOUT") || !strings.Contains(view, "[2/2]") {
		t.Errorf("view after switching = %s", view)
	}
	if !m.(LayerViewModel).Humanize {
		t.Error("u did not toggle labels")
	}
}

func TestLayerViewCellWidth(t *testing.T) {
	tests := []struct {
		width int
		cols  int
		want  int
	}{
		{0, 4, defaultCellWidth},
		{200, 4, defaultCellWidth},
		{41, 4, 7},
		{10, 12, minCellWidth},
	}

	for _, tt := range tests {
		m := LayerViewModel{Width: tt.width}
		if got := m.cellWidth(tt.cols); got != tt.want {
			t.Errorf("cellWidth(width=%d, cols=%d) = %d, want %d", tt.width, tt.cols, got, tt.want)
		}
	}
}

func TestCellText(t *testing.T) {
	tests := []struct {
		name  string
		cell  keymap.Cell
		human bool
		width int
		want  string
	}{
		{"gap", keymap.Gap(), false, 12, ""},
		{"raw", keymap.Key("KC_A"), false, 12, "KC_A"},
		{"humanized", keymap.Key("KC_UP"), true, 12, "↑"},
		{"truncated", keymap.Key("LT(1, KC_SPACE)"), false, 8, "LT(1, K…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellText(tt.cell, tt.human, tt.width); got != tt.want {
				t.Errorf("cellText() = %q, want %q", got, tt.want)
			}
		})
	}
}
