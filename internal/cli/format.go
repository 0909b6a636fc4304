package cli

import (
	"errors"

	"github.com/spf13/cobra"

	kerrors "github.com/matzehuels/keymapfmt/pkg/errors"
	"github.com/matzehuels/keymapfmt/pkg/pipeline"
)

// errNotFormatted is returned by format --check when the input would change.
var errNotFormatted = errors.New("keymap is not formatted")

type formatOpts struct {
	output  string
	write   bool
	check   bool
	noCache bool
	flags   pipeline.Options
}

// formatCommand creates the format command: parse, normalize and print the
// keymap with aligned columns.
func (c *CLI) formatCommand() *cobra.Command {
	opts := formatOpts{flags: pipeline.DefaultOptions()}

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Print keymap layers with aligned columns",
		Long: `Format reads the layer definitions of a keymap, lays them out as a grid with
the two halves separated and prints them back with aligned columns.

The result goes to stdout unless --output or --write is given. With --check
nothing is written and the command fails when the input is not formatted.`,
		Example: `  keymapfmt format keymap.c
  keymapfmt format -w --split-space 5 keymap.c
  keymapfmt format --check --align-layers keymap.c
  keymapfmt format - < keymap.c`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFormat(cmd, inputArg(args), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to the input file")
	cmd.Flags().BoolVar(&opts.check, "check", false, "fail if the input is not formatted")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	addGridFlags(cmd, &opts.flags)
	addFormatFlags(cmd, &opts.flags)
	cmd.MarkFlagsMutuallyExclusive("output", "write", "check")

	return cmd
}

func (c *CLI) runFormat(cmd *cobra.Command, input string, opts *formatOpts) error {
	if opts.write && input == stdinName {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "--write needs a file argument")
	}

	src, err := c.readInput(input)
	if err != nil {
		return err
	}

	popts := c.options(cmd, &opts.flags)
	popts.Formats = []string{pipeline.FormatQMK}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(cmd.Context(), src, popts)
	if err != nil {
		return err
	}
	out := result.Artifacts[pipeline.FormatQMK]

	switch {
	case opts.check:
		if string(out) != src {
			printWarning(c.Stdout, "%s is not formatted", displayName(input))
			return errNotFormatted
		}
		printSuccess(c.Stdout, "%s is formatted", displayName(input))
		return nil
	case opts.write:
		if string(out) == src {
			c.Logger.Debug("already formatted", "file", input)
			return nil
		}
		return c.writeFile(input, out)
	default:
		return c.writeFile(opts.output, out)
	}
}

// displayName names an input in messages.
func displayName(input string) string {
	if input == stdinName {
		return "<stdin>"
	}
	return input
}
