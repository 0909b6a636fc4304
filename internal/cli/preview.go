package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	kerrors "github.com/matzehuels/keymapfmt/pkg/errors"
	"github.com/matzehuels/keymapfmt/pkg/humanize"
	"github.com/matzehuels/keymapfmt/pkg/keymap"
	"github.com/matzehuels/keymapfmt/pkg/pipeline"
)

const (
	defaultCellWidth = 12 // widest cell text before truncation
	minCellWidth     = 3
	ellipsis         = "…"
)

type previewOpts struct {
	layer     string
	cellWidth int
	noCache   bool
	flags     pipeline.Options
}

// previewCommand creates the preview command, which prints each layer as a
// bordered table.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{flags: pipeline.DefaultOptions(), cellWidth: defaultCellWidth}

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Print keymap layers as tables",
		Example: `  keymapfmt preview keymap.c
  keymapfmt preview keymap.c --layer 1 --humanize`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := inputArg(args)
			src, err := c.readInput(input)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			popts := c.options(cmd, &opts.flags)
			km, err := runner.Build(cmd.Context(), src, popts)
			if err != nil {
				return err
			}

			layers := km.Layers
			if opts.layer != "" {
				l, ok := km.Layer(opts.layer)
				if !ok {
					return kerrors.New(kerrors.ErrCodeInvalidOptions, "no layer %q in %s", opts.layer, displayName(input))
				}
				layers = []keymap.Layer{l}
			}

			for i, l := range layers {
				if i > 0 {
					fmt.Fprintln(c.Stdout)
				}
				fmt.Fprintln(c.Stdout, layerTitle(l))
				fmt.Fprintln(c.Stdout, layerTable(l, popts.Humanize, opts.cellWidth))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.layer, "layer", "", "only show the layer with this number")
	cmd.Flags().IntVar(&opts.cellWidth, "cell-width", opts.cellWidth, "truncate cell text to this many columns")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.flags.Humanize, "humanize", opts.flags.Humanize, "show readable labels instead of raw keycodes")
	addGridFlags(cmd, &opts.flags)

	return cmd
}

// layerTitle renders the "[num] name" heading of a layer.
func layerTitle(l keymap.Layer) string {
	return StyleTitle.Render(fmt.Sprintf("[%s] %s", l.Num, l.Name))
}

// layerTable renders a layer grid as a bordered table. Gaps stay empty and
// cell text wider than cellWidth is truncated.
func layerTable(l keymap.Layer, human bool, cellWidth int) string {
	cellWidth = max(cellWidth, minCellWidth)

	rows := make([][]string, len(l.Keys))
	for i, row := range l.Keys {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = cellText(cell, human, cellWidth)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		BorderRow(false).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 || row >= len(l.Keys) || col >= len(l.Keys[row]) {
				return styleHeader
			}
			if l.Keys[row][col].IsGap() {
				return styleGap
			}
			return styleCell
		})
	return t.Render()
}

// cellText returns the display text of one cell.
func cellText(cell keymap.Cell, human bool, width int) string {
	text, ok := cell.Text()
	if !ok {
		return ""
	}
	if human {
		text = humanize.Humanize(text).String()
	}
	text = strings.Join(strings.Fields(text), " ")
	return runewidth.Truncate(text, width, ellipsis)
}
