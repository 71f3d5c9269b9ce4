package commands

import (
	"github.com/evolvelab/gopop/pkg/errors"
	"github.com/evolvelab/gopop/pkg/logging"
)

// setupLogging points the global logger at stderr so progress lines never mix
// with the formatted results on stdout. A non-empty logFile additionally
// archives entries to that file as JSON lines. The returned cleanup flushes
// and closes the file output.
func setupLogging(verbose bool, logFile string) (func(), error) {
	severity := logging.INFO
	if verbose {
		severity = logging.DEBUG
	}

	outputs := []logging.Output{logging.NewConsoleOutput(true, logging.WithColor(true))}
	cleanup := func() {}
	if logFile != "" {
		fileOutput, err := logging.NewFileOutput(logFile)
		if err != nil {
			return nil, errors.WithFields(
				errors.Wrap(err, errors.ConfigurationError, "failed to open log file"),
				errors.Fields{"path": logFile})
		}
		outputs = append(outputs, fileOutput)
		cleanup = func() { _ = fileOutput.Close() }
	}

	logging.SetLogger(logging.NewLogger(logging.Config{
		Severity: severity,
		Outputs:  outputs,
	}))
	return cleanup, nil
}
