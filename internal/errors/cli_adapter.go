package errors

import (
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	ve, ok := As(err)
	if !ok {
		return 1
	}

	switch ve.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryNetwork:
		return 8 // External system error
	case CategoryFileSystem:
		return 11 // Local I/O error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// Report logs err with its structured context. Context fields are only
// emitted in verbose mode.
func (a *CLIErrorAdapter) Report(err error) {
	if err == nil {
		return
	}

	ve, ok := As(err)
	if !ok {
		a.logger.Error("Command failed", "error", err)
		return
	}

	attrs := []any{"category", string(ve.Category), "error", ve.Error()}
	if a.verbose {
		for k, v := range ve.Context {
			attrs = append(attrs, k, v)
		}
	}
	a.logger.Error("Command failed", attrs...)
}
