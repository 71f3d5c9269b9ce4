// Package commands holds the cobra commands of the gopop CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evolvelab/gopop/cmd/gopop/internal/display"
)

func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available optimizers and benchmark functions",
		Long: `Display the built-in optimizers with their key characteristics, followed by
the benchmark function catalog with conventional bounds.

This command helps you discover what is available before putting a single run
or a whole campaign together.`,
		Example: `  # List everything
  gopop list

  # Pipe to grep for filtering
  gopop list | grep -i "evolution"`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, display.FormatOptimizerList())
			fmt.Fprintln(out)
			fmt.Fprint(out, display.FormatFunctionList())
		},
	}
}
