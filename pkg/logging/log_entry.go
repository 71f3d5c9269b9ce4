package logging

import (
	"context"
)

// LogEntry represents a structured log record with fields particularly relevant to optimization runs.
type LogEntry struct {
	// Standard fields
	Time     int64    `json:"time"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Function string   `json:"function"`

	// Optimization-specific fields
	RunID     string `json:"run_id,omitempty"`    // Identifier of the optimization run
	Optimizer string `json:"optimizer,omitempty"` // Name of the optimizer producing the entry

	// General structured data
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// Context keys for run metadata.
type runIDKeyType struct{}
type optimizerKeyType struct{}

var (
	runIDKey     = runIDKeyType{}
	optimizerKey = optimizerKeyType{}
)

// WithRunID attaches a run identifier to the context so every log entry
// produced during that run carries it.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID retrieves the run identifier from the context.
func GetRunID(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(runIDKey).(string)
	return runID, ok
}

// WithOptimizerName attaches the active optimizer's name to the context.
func WithOptimizerName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, optimizerKey, name)
}

// GetOptimizerName retrieves the active optimizer's name from the context.
func GetOptimizerName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(optimizerKey).(string)
	return name, ok
}
