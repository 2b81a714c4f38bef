package cli

import (
	"io"
	"sync"

	"github.com/agbru/pireduce/internal/progress"
)

// ProgressReporter renders the engine's worker completions while a solve is
// running.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer)
}

// CLIProgressReporter implements ProgressReporter with a spinner and
// progress bar.
type CLIProgressReporter struct{}

var _ ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for running workers.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numWorkers, out)
}

// NullProgressReporter drains updates without rendering anything.
type NullProgressReporter struct{}

var _ ProgressReporter = NullProgressReporter{}

// DisplayProgress consumes progressChan until it is closed.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}
