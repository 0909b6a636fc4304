package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/keymapfmt/pkg/keymap"
	"github.com/matzehuels/keymapfmt/pkg/pipeline"
)

// =============================================================================
// LayerViewModel - Interactive layer browser
// =============================================================================

// LayerViewModel is the bubbletea model for browsing the layers of a keymap.
type LayerViewModel struct {
	Keymap   *keymap.Keymap
	Index    int
	Humanize bool
	Width    int
}

// NewLayerViewModel creates a viewer positioned on the first layer.
func NewLayerViewModel(km *keymap.Keymap, human bool) LayerViewModel {
	return LayerViewModel{Keymap: km, Humanize: human}
}

func (m LayerViewModel) Init() tea.Cmd {
	return nil
}

func (m LayerViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Keymap.Layers)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "tab":
			if n > 0 {
				m.Index = (m.Index + 1) % n
			}
		case "left", "h", "shift+tab":
			if n > 0 {
				m.Index = (m.Index - 1 + n) % n
			}
		case "home", "g":
			m.Index = 0
		case "end", "G":
			m.Index = max(n-1, 0)
		case "u":
			m.Humanize = !m.Humanize
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

func (m LayerViewModel) View() string {
	var b strings.Builder

	if len(m.Keymap.Layers) == 0 {
		return StyleDim.Render("no layers") + "\n"
	}
	l := m.Keymap.Layers[m.Index]

	b.WriteString(layerTitle(l))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ switch layer  u labels  q quit"))
	b.WriteString("\n\n")
	b.WriteString(layerTable(l, m.Humanize, m.cellWidth(l.Cols())))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Index+1, len(m.Keymap.Layers))))

	return b.String()
}

// cellWidth fits cols cells into the terminal width. Each cell carries two
// padding columns and one border.
func (m LayerViewModel) cellWidth(cols int) int {
	if m.Width <= 0 || cols == 0 {
		return defaultCellWidth
	}
	w := (m.Width-1)/cols - 3
	return min(max(w, minCellWidth), defaultCellWidth)
}

// =============================================================================
// View Command
// =============================================================================

// viewCommand creates the interactive layer viewer.
func (c *CLI) viewCommand() *cobra.Command {
	flags := pipeline.DefaultOptions()
	var noCache bool

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Browse keymap layers interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.readInput(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.options(cmd, &flags)
			km, err := runner.Build(cmd.Context(), src, opts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewLayerViewModel(km, opts.Humanize),
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.Humanize, "humanize", flags.Humanize, "start with readable labels")
	addGridFlags(cmd, &flags)

	return cmd
}
