package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorConfig   = 4   // Indicates a configuration (argument) error.
	ExitErrorResource = 5   // Indicates shared memory or a worker could not be obtained.
	ExitErrorWorker   = 6   // Indicates a worker terminated abnormally.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// positional arguments. It indicates that the application cannot proceed due
// to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
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

// ResourceError reports that a resource the engine needs before computing
// could not be acquired: the shared accumulator mapping or a worker process.
type ResourceError struct {
	// Op names the acquisition that failed (e.g., "allocate accumulator").
	Op string
	// Cause is the underlying system error.
	Cause error
}

// Error returns a message naming the failed operation and its cause.
//
// Returns:
//   - string: The error message string.
func (e ResourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the original wrapped error.
//
// Returns:
//   - error: The underlying cause of the ResourceError.
func (e ResourceError) Unwrap() error { return e.Cause }

// WorkerError reports that a worker terminated without storing its partial
// sum, which invalidates the whole reduction.
type WorkerError struct {
	// Index is the 0-based worker index.
	Index int
	// Cause is the exit status or error returned by the worker.
	Cause error
}

// Error returns a message identifying the failed worker.
//
// Returns:
//   - string: The error message string.
func (e WorkerError) Error() string {
	return fmt.Sprintf("worker %d failed: %v", e.Index, e.Cause)
}

// Unwrap returns the original wrapped error.
//
// Returns:
//   - error: The underlying cause of the WorkerError.
func (e WorkerError) Unwrap() error { return e.Cause }

// TimeoutError represents a computation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
//
// Returns:
//   - string: The error message string.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
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

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	var (
		configErr   ConfigError
		resourceErr ResourceError
		workerErr   WorkerError
		timeoutErr  TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case IsContextError(err):
		if errors.Is(err, context.DeadlineExceeded) {
			return ExitErrorTimeout
		}
		return ExitErrorCanceled
	case errors.As(err, &resourceErr):
		return ExitErrorResource
	case errors.As(err, &workerErr):
		return ExitErrorWorker
	default:
		return ExitErrorGeneric
	}
}
