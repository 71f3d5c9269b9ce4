package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evolvelab/gopop/cmd/gopop/internal/display"
	"github.com/evolvelab/gopop/cmd/gopop/internal/optimizers"
)

func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <optimizer>",
		Short: "Get detailed information about a specific optimizer",
		Long: `Display one optimizer's full description: the algorithm, its cost per
generation, its restart behavior, and every parameter it accepts together
with the defaults.

This is the reference for what can go into an experiment file's params block
or a run command's --param flags.`,
		Example: `  # Describe the CSA evolution strategy
  gopop describe csaes

  # Case insensitive
  gopop describe DE`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return optimizers.ListAll(), cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			info, err := optimizers.GetOptimizer(args[0])
			if err != nil {
				fmt.Fprintf(out, "Error: %s\n\n", err)
				fmt.Fprintln(out, "Available optimizers:")
				for _, name := range optimizers.ListAll() {
					fmt.Fprintf(out, "  - %s\n", name)
				}
				return
			}

			fmt.Fprint(out, display.FormatOptimizerDetails(info))
		},
	}
}
