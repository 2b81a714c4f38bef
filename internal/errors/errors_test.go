// Package apperrors provides tests for application error types.
package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"syscall"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "expected 2 arguments"},
			expected: "expected 2 arguments",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid worker count %q", "four"),
			expected: `invalid worker count "four"`,
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestResourceError(t *testing.T) {
	t.Parallel()
	err := ResourceError{Op: "spawn worker 2", Cause: syscall.EAGAIN}

	if got, want := err.Error(), "spawn worker 2: "+syscall.EAGAIN.Error(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, syscall.EAGAIN) {
		t.Error("errors.Is should find the cause through ResourceError")
	}
}

func TestWorkerError(t *testing.T) {
	t.Parallel()
	cause := errors.New("exit status 3")
	err := WrapError(WorkerError{Index: 1, Cause: cause}, "await workers")

	if got, want := err.Error(), "await workers: worker 1 failed: exit status 3"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	var workerErr WorkerError
	if !errors.As(err, &workerErr) {
		t.Fatal("errors.As should find WorkerError through WrapError")
	}
	if workerErr.Index != 1 {
		t.Errorf("expected Index 1, got %d", workerErr.Index)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the worker cause")
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      TimeoutError
		expected string
	}{
		{
			name:     "Error returns formatted message",
			err:      TimeoutError{Operation: "solve", Limit: 30 * time.Second},
			expected: `operation "solve" timed out after 30s`,
		},
		{
			name:     "Error with subsecond limit",
			err:      TimeoutError{Operation: "await workers", Limit: 500 * time.Millisecond},
			expected: `operation "await workers" timed out after 500ms`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var err error = tt.err
			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
			var timeoutErr TimeoutError
			if !errors.As(err, &timeoutErr) {
				t.Error("expected error to be TimeoutError type")
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("file not found"),
			format:      "failed to load config",
			expectedMsg: "failed to load config: file not found",
		},
		{
			name:        "preserves error chain",
			original:    context.DeadlineExceeded,
			format:      "operation timed out",
			expectedMsg: "operation timed out: context deadline exceeded",
			checkIs:     context.DeadlineExceeded,
		},
		{
			name:      "returns nil for nil error",
			original:  nil,
			format:    "some context",
			expectNil: true,
		},
		{
			name:        "supports format arguments",
			original:    errors.New("no such file"),
			format:      "launch worker %d of %d",
			args:        []any{3, 4},
			expectedMsg: "launch worker 3 of 4: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)

			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}

			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}

			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}

			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "operation canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := IsContextError(tt.err)
			if result != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"wrapped config", WrapError(NewConfigError("bad"), "parse"), ExitErrorConfig},
		{"resource", ResourceError{Op: "mmap", Cause: syscall.ENOMEM}, ExitErrorResource},
		{"worker", WorkerError{Index: 0, Cause: errors.New("killed")}, ExitErrorWorker},
		{"timeout type", TimeoutError{Operation: "solve", Limit: time.Second}, ExitErrorTimeout},
		{"deadline", WrapError(context.DeadlineExceeded, "solve"), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"wrapped canceled", WrapError(context.Canceled, "await workers"), ExitErrorCanceled},
		{"canceled and deadline", errors.Join(context.Canceled, context.DeadlineExceeded), ExitErrorTimeout},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()

	t.Run("nil writes nothing", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if code := HandleError(nil, &buf); code != ExitSuccess {
			t.Errorf("expected %d, got %d", ExitSuccess, code)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("single diagnostic line", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		code := HandleError(NewConfigError("worker count must be at least 1"), &buf)
		if code != ExitErrorConfig {
			t.Errorf("expected %d, got %d", ExitErrorConfig, code)
		}
		out := buf.String()
		if strings.Count(out, "\n") != 1 {
			t.Errorf("expected exactly one line, got %q", out)
		}
		if !strings.Contains(out, "worker count must be at least 1") {
			t.Errorf("diagnostic should contain the cause, got %q", out)
		}
	})
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":       ExitSuccess,
		"ExitErrorGeneric":  ExitErrorGeneric,
		"ExitErrorTimeout":  ExitErrorTimeout,
		"ExitErrorConfig":   ExitErrorConfig,
		"ExitErrorResource": ExitErrorResource,
		"ExitErrorWorker":   ExitErrorWorker,
		"ExitErrorCanceled": ExitErrorCanceled,
	}

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if other, ok := seen[code]; ok {
			t.Errorf("%s and %s share exit code %d", name, other, code)
		}
		seen[code] = name
	}
}
