// Package errors provides the structured error type shared by the
// conversion pipeline and the CLI. Failures that cross a package
// boundary are classified into a category, which the CLI maps onto
// exit codes and log levels.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies a ConvertError by failure domain.
type ErrorCategory string

const (
	// Configuration and usage errors surfaced directly to the user.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Failures inside the markdown to DOCX pipeline.
	CategoryParse           ErrorCategory = "parse"
	CategoryUnsupportedNode ErrorCategory = "unsupported_node"
	CategoryRender          ErrorCategory = "render"
	CategoryDiagram         ErrorCategory = "diagram"

	// Artifact output and remote source failures.
	CategoryWrite  ErrorCategory = "write"
	CategorySource ErrorCategory = "source"

	// Everything that indicates a bug rather than bad input.
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity grades how much of the run an error takes down.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the file's conversion
	SeverityError   ErrorSeverity = "error"   // Recoverable, the run continues
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded output
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ConvertError is a classified error carrying severity, an optional
// cause, and free-form context fields for logging.
type ConvertError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ConvertError.
type ContextFields map[string]any

// Error formats the error as "category (severity): message[: cause]".
func (e *ConvertError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *ConvertError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair, allocating the map on first use.
func (e *ConvertError) WithContext(key string, value any) *ConvertError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a ConvertError with no cause.
func New(category ErrorCategory, severity ErrorSeverity, message string) *ConvertError {
	return &ConvertError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap classifies an underlying error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ConvertError {
	ce := New(category, severity, message)
	ce.Cause = err
	return ce
}

// WrapRetryable classifies an underlying error whose operation may
// succeed on a later attempt.
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *ConvertError {
	ce := Wrap(err, category, severity, message)
	ce.Retryable = true
	return ce
}

// IsCategory reports whether err or anything in its chain is a
// ConvertError of the given category.
func IsCategory(err error, category ErrorCategory) bool {
	var ce *ConvertError
	return errors.As(err, &ce) && ce.Category == category
}

// IsRetryable reports whether err is marked retryable.
func IsRetryable(err error) bool {
	var ce *ConvertError
	return errors.As(err, &ce) && ce.Retryable
}

// GetCategory extracts the classification, defaulting to
// CategoryInternal for plain errors.
func GetCategory(err error) ErrorCategory {
	var ce *ConvertError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return CategoryInternal
}
