package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/keymapfmt/pkg/syntax"
)

// grammarCommand prints the EBNF the parser accepts.
func (c *CLI) grammarCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "Print the keymap grammar as EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.Stdout, syntax.Grammar())
			return err
		},
	}
}
