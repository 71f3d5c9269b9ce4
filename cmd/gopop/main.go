package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evolvelab/gopop/cmd/gopop/internal/commands"
)

var rootCmd = &cobra.Command{
	Use:   "gopop",
	Short: "Black-box optimization of continuous benchmark functions",
	Long: `gopop bundles a family of population-based and direct-search optimizers
with a benchmark function catalog, repeatable campaign files, and archiving
of results.

The CLI provides:
- Quick exploration of the built-in optimizers and benchmark functions
- Single runs of any optimizer on any catalog function
- Campaign files running many repetitions in parallel
- Cross-run metrics: success rate, expected running time, best-value quantiles`,
	Version: "0.1.0",
}

func main() {
	rootCmd.AddCommand(
		commands.NewListCommand(),
		commands.NewDescribeCommand(),
		commands.NewRunCommand(),
		commands.NewBenchCommand(),
	)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
