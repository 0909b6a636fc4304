package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/keymapfmt/pkg/pipeline"
)

// checkCommand creates the check command, which parses and builds a keymap
// without printing it and reports its shape.
func (c *CLI) checkCommand() *cobra.Command {
	flags := pipeline.DefaultOptions()
	var noCache bool

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a keymap and show its layer summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := inputArg(args)
			src, err := c.readInput(input)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			p := newProgress(loggerFromContext(cmd.Context()))
			km, err := runner.Build(cmd.Context(), src, c.options(cmd, &flags))
			if err != nil {
				return err
			}
			p.done("Checked " + displayName(input))

			printSuccess(c.Stdout, "%s is valid", displayName(input))
			printKeyValue(c.Stdout, "Layers", strconv.Itoa(len(km.Layers)))
			printKeyValue(c.Stdout, "Rows", strconv.Itoa(km.Rows()))
			printKeyValue(c.Stdout, "Columns", strconv.Itoa(km.MaxCols()))
			for _, l := range km.Layers {
				printDetail(c.Stdout, "[%s] %s: %s", l.Num, l.Name, plural(l.KeyCount(), "key"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addGridFlags(cmd, &flags)

	return cmd
}
