package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/keymapfmt/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file (single format) or base path (several)
	formats string // comma-separated formats
	noCache bool   // bypass the local cache
	flags   pipeline.Options
}

// renderCommand creates the render command, which writes one file per
// requested format next to the input (or at the --output base path).
//
// Formats:
//   - qmk: the aligned keymap source
//   - svg, png, pdf: a drawing of every layer
//   - json: the normalized grid
//   - dot, graph: the layer switching graph as DOT or SVG
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{flags: pipeline.DefaultOptions()}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render keymap layers to SVG, PNG, PDF, JSON or DOT",
		Long: `Render builds the keymap grid and writes one artifact per format.

With a single format, --output names the file. With several formats, --output
is a base path and each artifact gets its own extension. Reading from stdin
("-" or no argument) writes keymap.<ext> unless --output is set.`,
		Example: `  keymapfmt render keymap.c
  keymapfmt render keymap.c -f svg,png --humanize
  keymapfmt render keymap.c -f json -o layers.json
  cat keymap.c | keymapfmt render -f dot -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, inputArg(args), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(formatNames(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.flags.Humanize, "humanize", opts.flags.Humanize, "draw readable labels instead of raw keycodes")
	cmd.Flags().Float64Var(&opts.flags.Scale, "scale", opts.flags.Scale, "pixel scale for png output")
	addGridFlags(cmd, &opts.flags)
	addFormatFlags(cmd, &opts.flags)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()

	popts := c.options(cmd, &opts.flags)
	if cmd.Flags().Changed("format") || len(popts.Formats) == 0 || isDefaultFormats(popts.Formats) {
		popts.Formats = parseFormats(opts.formats)
	}
	if err := pipeline.ValidateFormats(popts.Formats); err != nil {
		return err
	}
	if opts.output == stdinName && len(popts.Formats) > 1 {
		return fmt.Errorf("cannot write %d formats to stdout", len(popts.Formats))
	}

	src, err := c.readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := c.spinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(popts.Formats, ", ")))
	result, err := runner.Execute(ctx, src, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if opts.output == stdinName {
		return c.writeFile(stdinName, result.Artifacts[popts.Formats[0]])
	}

	paths, err := c.writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   popts.Formats,
		input:     input,
		output:    opts.output,
	})
	if err != nil {
		return err
	}

	printSuccess(c.Stdout, "Rendered %s", plural(len(paths), "file"))
	for _, p := range paths {
		printFile(c.Stdout, p)
	}
	printStats(c.Stdout, result.Stats.Layers, result.Stats.Rows, result.Stats.Cols, result.CacheHit)
	return nil
}

// isDefaultFormats reports whether formats is the built-in qmk default,
// which render replaces with its own svg default.
func isDefaultFormats(formats []string) bool {
	return len(formats) == 1 && formats[0] == pipeline.FormatQMK
}

// formatNames lists the supported formats in a stable order.
func formatNames() []string {
	return slices.Sorted(maps.Keys(pipeline.ValidFormats))
}
