package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/evolvelab/gopop/cmd/gopop/internal/display"
	"github.com/evolvelab/gopop/cmd/gopop/internal/optimizers"
	"github.com/evolvelab/gopop/cmd/gopop/internal/runner"
	"github.com/evolvelab/gopop/pkg/config"
	"github.com/evolvelab/gopop/pkg/errors"
	"github.com/evolvelab/gopop/pkg/results"
)

func NewBenchCommand() *cobra.Command {
	var (
		repetitions int
		workers     int
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "bench <config>",
		Short: "Run a benchmark campaign from a YAML experiment file",
		Long: `Run every optimizer in the experiment file on every problem, repeated the
configured number of times, and print the aggregate metrics per pair:
success rate at the target, expected running time, and best-value quantiles.

When the experiment configures outputs, run summaries are archived to a
SQLite database and recorded fitness trajectories are exported as one
Parquet file per run.`,
		Example: `  # Run the campaign described in experiment.yaml
  gopop bench experiment.yaml

  # Same campaign as a quick smoke pass
  gopop bench experiment.yaml --repetitions 2 --workers 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := config.Load(args[0])
			if err != nil {
				return err
			}

			cleanup, err := setupLogging(verbose, exp.Output.LogFile)
			if err != nil {
				return err
			}
			defer cleanup()

			if cmd.Flags().Changed("repetitions") {
				if repetitions < 1 {
					return errors.New(errors.InvalidInput, "repetitions must be at least 1")
				}
				exp.Repetitions = repetitions
			}
			if cmd.Flags().Changed("workers") {
				if workers < 1 {
					return errors.New(errors.InvalidInput, "workers must be at least 1")
				}
				exp.Workers = workers
			}

			registry, err := optimizers.NewRegistry(exp.Optimizers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Experiment %s: %d problems x %d optimizers x %d repetitions\n",
				exp.Name, len(exp.Problems), len(exp.Optimizers), exp.Repetitions)

			report, err := runner.New(exp, registry).Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprint(out, display.FormatCampaignSummary(report.Summaries))
			return persist(cmd.Context(), exp, report, out)
		},
	}

	cmd.Flags().IntVar(&repetitions, "repetitions", 0, "Override the configured repetition count")
	cmd.Flags().IntVar(&workers, "workers", 0, "Override the configured parallel run count")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Debug logging")

	return cmd
}

// persist writes the campaign's records to the outputs the experiment
// configures. Without configured outputs it is a no-op.
func persist(ctx context.Context, exp *config.Experiment, report *runner.Report, out io.Writer) error {
	if path := exp.Output.SQLite; path != "" {
		store, err := results.NewSQLiteStore(path)
		if err != nil {
			return err
		}
		defer store.Close()
		for _, rec := range report.Records {
			if err := store.Insert(ctx, rec); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "\nArchived %d runs to %s\n", len(report.Records), path)
	}

	if dir := exp.Output.ParquetDir; dir != "" {
		paths, err := results.ExportTrajectories(dir, report.Records)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d trajectory files to %s\n", len(paths), dir)
	}

	return nil
}
