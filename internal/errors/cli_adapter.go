package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// Exit codes, stable so scripts can branch on them.
const (
	exitOK         = 0
	exitGeneral    = 1
	exitUsage      = 2
	exitConfig     = 7
	exitSource     = 8
	exitInternal   = 10
	exitConversion = 11
)

// CLIErrorAdapter turns errors into process exit codes and user-facing
// messages for the command line frontend.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor maps an error's category to the process exit code.
// Unclassified errors exit 1.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}

	var ce *ConvertError
	if !errors.As(err, &ce) {
		return exitGeneral
	}

	switch ce.Category {
	case CategoryValidation:
		return exitUsage
	case CategoryConfig:
		return exitConfig
	case CategorySource:
		return exitSource
	case CategoryParse, CategoryRender, CategoryWrite:
		return exitConversion
	case CategoryInternal:
		return exitInternal
	default:
		return exitGeneral
	}
}

// FormatError renders err for the terminal. Verbose mode shows the full
// classification and cause chain; otherwise only the message.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	var ce *ConvertError
	if !errors.As(err, &ce) {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return ce.Error()
	}
	return fmt.Sprintf("Error: %s", ce.Message)
}
