//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/pireduce/internal/progress"
	"github.com/agbru/pireduce/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This decouples DisplayProgress from a specific spinner implementation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// progressBar generates a string representing a textual progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgress renders the spinner suffix for completed of total workers.
func FormatProgress(completed, total, failed int) string {
	frac := 1.0
	if total > 0 {
		frac = float64(completed) / float64(total)
	}
	s := fmt.Sprintf(" %s %3.0f%% %d/%d workers", progressBar(frac, ProgressBarWidth), frac*100, completed, total)
	if failed > 0 {
		s += fmt.Sprintf(" %s(%d failed)%s", ui.ColorError(), failed, ui.ColorReset())
	}
	return s
}

// DisplayProgress renders worker completions from progressChan until it is
// closed, then calls wg.Done. Output goes to out, normally stderr.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer) {
	defer wg.Done()
	if numWorkers <= 0 {
		for range progressChan {
		}
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(FormatProgress(0, numWorkers, 0))
	s.Start()

	completed, failed := 0, 0
	for u := range progressChan {
		completed = u.Completed
		if u.Err != nil {
			failed++
		}
		s.UpdateSuffix(FormatProgress(completed, numWorkers, failed))
	}
	s.Stop()

	color := ui.ColorSuccess()
	if failed > 0 || completed < numWorkers {
		color = ui.ColorWarning()
	}
	fmt.Fprintf(out, "%s%s%s\n", color, strings.TrimPrefix(FormatProgress(completed, numWorkers, failed), " "), ui.ColorReset())
}
