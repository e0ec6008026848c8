// Package apperrors defines structured application error types, allowing a
// clear distinction between error classes (configuration, input, internal
// invariant, server) while carrying the underlying cause.
//
// All wrapper types implement Unwrap so errors.Is and errors.As reach the
// domain sentinels (numeral.ErrInvalidDigit, roots.ErrDuplicateLabel, ...).
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes.
const (
	ExitSuccess        = 0   // Successful execution.
	ExitErrorGeneric   = 1   // Generic error.
	ExitErrorTimeout   = 2   // The operation timed out.
	ExitErrorMismatch  = 3   // Assemblers disagreed on the coefficients.
	ExitErrorConfig    = 4   // Invalid flags or environment.
	ExitErrorInput     = 5   // Invalid input document, base, digit or selection.
	ExitErrorInvariant = 6   // A built polynomial failed verification.
	ExitErrorCanceled  = 130 // Canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags
// or values.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InputError marks a failure caused by the content of the input document:
// an invalid base or digit, a malformed or duplicate entry, or an
// out-of-range selection.
type InputError struct {
	Cause error
}

// Error returns the message of the underlying cause.
func (e InputError) Error() string { return e.Cause.Error() }

// Unwrap returns the underlying cause.
func (e InputError) Unwrap() error { return e.Cause }

// NewInputError wraps err as an InputError. It returns nil for a nil error.
func NewInputError(err error) error {
	if err == nil {
		return nil
	}
	return InputError{Cause: err}
}

// InvariantError marks an internal defect: a polynomial that does not
// vanish at one of its own roots, or an assembler returning a result of the
// wrong shape. It is never caused by user input.
type InvariantError struct {
	Cause error
}

// Error returns the message of the underlying cause, prefixed to make the
// class of failure explicit.
func (e InvariantError) Error() string {
	return "internal invariant violated: " + e.Cause.Error()
}

// Unwrap returns the underlying cause.
func (e InvariantError) Unwrap() error { return e.Cause }

// NewInvariantError wraps err as an InvariantError. It returns nil for a nil
// error.
func NewInvariantError(err error) error {
	if err == nil {
		return nil
	}
	return InvariantError{Cause: err}
}

// AssemblyError wraps an error returned by an assembler, preserving the
// name of the strategy that produced it.
type AssemblyError struct {
	// Algorithm is the name of the failing strategy.
	Algorithm string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e AssemblyError) Error() string {
	if e.Algorithm == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Algorithm, e.Cause)
}

// Unwrap returns the underlying cause.
func (e AssemblyError) Unwrap() error { return e.Cause }

// ServerError represents errors that occur in the HTTP server component.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error combines the descriptive message and the cause, if any.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err is a context cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit code. Context errors take
// precedence, then invariant, input and configuration errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		invariant InvariantError
		input     InputError
		config    ConfigError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &invariant):
		return ExitErrorInvariant
	case errors.As(err, &input):
		return ExitErrorInput
	case errors.As(err, &config):
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}
