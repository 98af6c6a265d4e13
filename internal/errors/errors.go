// Package errors provides a lightweight structured error type (VendorError)
// for category-based classification of failures in the vendoring pipeline and CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of an imgvendor error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// External system integration errors
	CategoryNetwork ErrorCategory = "network"

	// Local processing errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// VendorError is a structured error with category, severity and context
type VendorError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for VendorError
type ContextFields map[string]any

// Error implements the error interface
func (e *VendorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping
func (e *VendorError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *VendorError) WithContext(key string, value any) *VendorError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new VendorError
func New(category ErrorCategory, severity ErrorSeverity, message string) *VendorError {
	return &VendorError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new VendorError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *VendorError {
	return &VendorError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost VendorError in err's chain.
func As(err error) (*VendorError, bool) {
	var ve *VendorError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ve, ok := As(err); ok {
		return ve.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a VendorError
func GetCategory(err error) ErrorCategory {
	if ve, ok := As(err); ok {
		return ve.Category
	}
	return CategoryInternal
}

// HTTPStatusError reports a completed request whose response status was not 2xx.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPStatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("HTTP %s", e.Status)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// StatusCode returns the HTTP status carried anywhere in err's chain, or 0.
func StatusCode(err error) int {
	var se *HTTPStatusError
	if stdErrors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
