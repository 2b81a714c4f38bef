package apperrors

import (
	"fmt"
	"io"
)

// HandleError writes the single diagnostic line for err to out and returns
// the matching exit code. A nil error writes nothing.
func HandleError(err error, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	code := ExitCode(err)
	switch code {
	case ExitErrorConfig:
		fmt.Fprintf(out, "Invalid arguments: %v\n", err)
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Timed out: %v\n", err)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "Canceled: %v\n", err)
	case ExitErrorResource:
		fmt.Fprintf(out, "Resource error: %v\n", err)
	case ExitErrorWorker:
		fmt.Fprintf(out, "Worker error: %v\n", err)
	default:
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return code
}
