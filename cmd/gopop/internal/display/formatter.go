// Package display renders CLI output: catalog listings, optimizer details,
// single-run results, and campaign summary tables.
package display

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/evolvelab/gopop/cmd/gopop/internal/optimizers"
	"github.com/evolvelab/gopop/cmd/gopop/internal/runner"
	"github.com/evolvelab/gopop/pkg/benchmarks"
	"github.com/evolvelab/gopop/pkg/core"
)

const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
)

// FormatOptimizerList renders the built-in optimizers with their key
// characteristics.
func FormatOptimizerList() string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%s%sAvailable Optimizers%s\n", ColorBold, ColorBlue, ColorReset))
	output.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, key := range optimizers.ListAll() {
		info, _ := optimizers.GetOptimizer(key)

		output.WriteString(fmt.Sprintf("%s%s%s%s  (%s)\n", ColorBold, ColorGreen, key, ColorReset, info.Name))
		output.WriteString(fmt.Sprintf("  %s\n", info.Description))
		output.WriteString(fmt.Sprintf("  %sFamily:%s %s | %sCost:%s %s\n",
			ColorCyan, ColorReset, info.Family,
			ColorCyan, ColorReset, info.Cost))
		output.WriteString(fmt.Sprintf("  %sRestarts:%s %s\n", ColorCyan, ColorReset, info.Restarts))
		output.WriteString("\n")
	}

	output.WriteString(fmt.Sprintf("%sTip:%s Use 'gopop describe <optimizer>' for parameters and defaults\n",
		ColorPurple, ColorReset))

	return output.String()
}

// FormatFunctionList renders the benchmark catalog with conventional bounds
// and minimum dimensionalities.
func FormatFunctionList() string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%s%sBenchmark Functions%s\n", ColorBold, ColorBlue, ColorReset))
	output.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, f := range benchmarks.All() {
		bounds := fmt.Sprintf("[%g, %g]", f.Lower, f.Upper)
		output.WriteString(fmt.Sprintf("  %-18s %-18s min dim %d\n", f.Name, bounds, f.MinDim))
	}

	output.WriteString(fmt.Sprintf("\n%sTip:%s Shift or rotate any function with --shift-seed / --rotation-seed\n",
		ColorPurple, ColorReset))

	return output.String()
}

// FormatOptimizerDetails renders one optimizer's full description.
func FormatOptimizerDetails(info optimizers.OptimizerInfo) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%s%s%s%s\n", ColorBold, ColorBlue, info.Name, ColorReset))
	output.WriteString(strings.Repeat("=", len(info.Name)+10) + "\n\n")

	output.WriteString(fmt.Sprintf("%sDescription:%s\n%s\n\n", ColorBold, ColorReset, info.Description))

	output.WriteString(fmt.Sprintf("%sCharacteristics:%s\n", ColorBold, ColorReset))
	output.WriteString(fmt.Sprintf("  • %sFamily:%s %s\n", ColorCyan, ColorReset, info.Family))
	output.WriteString(fmt.Sprintf("  • %sCost:%s %s\n", ColorCyan, ColorReset, info.Cost))
	output.WriteString(fmt.Sprintf("  • %sRestarts:%s %s\n", ColorCyan, ColorReset, info.Restarts))

	output.WriteString(fmt.Sprintf("\n%sParameters:%s\n", ColorBold, ColorReset))
	for _, param := range info.Parameters {
		output.WriteString(fmt.Sprintf("  • %s\n", param))
	}

	output.WriteString(fmt.Sprintf("\n%sExample:%s\n  %s\n", ColorBold, ColorReset, info.Example))

	return output.String()
}

// FormatRunResult renders the outcome of a single optimization run.
func FormatRunResult(name string, res *core.Results) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("\n%s%sOptimization Complete%s\n", ColorBold, ColorGreen, ColorReset))
	output.WriteString(strings.Repeat("=", 40) + "\n")

	output.WriteString(fmt.Sprintf("%sOptimizer:%s    %s\n", ColorCyan, ColorReset, name))
	output.WriteString(fmt.Sprintf("%sBest y:%s       %.6e\n", ColorCyan, ColorReset, res.BestY))
	output.WriteString(fmt.Sprintf("%sEvaluations:%s  %d\n", ColorCyan, ColorReset, res.NFunctionEvaluations))
	output.WriteString(fmt.Sprintf("%sGenerations:%s  %d\n", ColorCyan, ColorReset, res.NGenerations))
	output.WriteString(fmt.Sprintf("%sRuntime:%s      %s\n", ColorCyan, ColorReset, res.Runtime.Round(time.Millisecond)))
	output.WriteString(fmt.Sprintf("%sTermination:%s  %s\n", ColorCyan, ColorReset, res.Termination))
	if restarts, ok := res.Extra["n_restart"].(int); ok {
		output.WriteString(fmt.Sprintf("%sRestarts:%s     %d\n", ColorCyan, ColorReset, restarts))
	}
	output.WriteString(fmt.Sprintf("%sBest x:%s       %s\n", ColorCyan, ColorReset, formatVector(res.BestX, 8)))

	return output.String()
}

// FormatCampaignSummary renders the per-pair aggregate table of a finished
// campaign.
func FormatCampaignSummary(summaries []runner.PairSummary) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("\n%s%sCampaign Summary%s\n", ColorBold, ColorBlue, ColorReset))
	output.WriteString(strings.Repeat("=", 88) + "\n")
	output.WriteString(fmt.Sprintf("%-14s %-26s %4s %9s %11s %13s %13s\n",
		"OPTIMIZER", "PROBLEM", "DIM", "SUCCESS", "ERT", "BEST MEDIAN", "BEST MIN"))

	for _, s := range summaries {
		success := fmt.Sprintf("%d/%d", s.Summary.Successes, s.Summary.Runs)
		output.WriteString(fmt.Sprintf("%-14s %-26s %4d %9s %11s %13.4e %13.4e\n",
			s.Optimizer, s.Problem, s.Dim, success,
			formatERT(s.Summary.ERT), s.Summary.BestMedian, s.Summary.BestMin))
	}

	return output.String()
}

func formatERT(ert float64) string {
	if math.IsInf(ert, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.4g", ert)
}

// formatVector prints up to max coordinates of x, eliding the rest.
func formatVector(x []float64, max int) string {
	parts := make([]string, 0, max+1)
	for i, v := range x {
		if i == max {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, fmt.Sprintf("%.6g", v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
