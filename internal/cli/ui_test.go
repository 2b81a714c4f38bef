package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/pireduce/internal/cli/mocks"
	"github.com/agbru/pireduce/internal/progress"
	"github.com/agbru/pireduce/internal/ui"
)

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		full     int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.7, 10},
		{-0.2, 0},
	}
	for _, tt := range tests {
		bar := progressBar(tt.progress, 10)
		if got := strings.Count(bar, "█"); got != tt.full {
			t.Errorf("progressBar(%v) has %d full cells, want %d", tt.progress, got, tt.full)
		}
		if got := len([]rune(bar)); got != 10 {
			t.Errorf("progressBar(%v) width = %d, want 10", tt.progress, got)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	orig := ui.GetCurrentTheme()
	defer ui.SetCurrentTheme(orig)
	ui.SetCurrentTheme(ui.NoColorTheme)

	got := FormatProgress(2, 4, 0)
	if !strings.Contains(got, " 50% 2/4 workers") {
		t.Errorf("FormatProgress(2, 4, 0) = %q", got)
	}
	if got := FormatProgress(3, 4, 1); !strings.HasSuffix(got, "(1 failed)") {
		t.Errorf("failed workers should be reported, got %q", got)
	}
}

func TestDisplayProgress(t *testing.T) {
	orig := ui.GetCurrentTheme()
	defer ui.SetCurrentTheme(orig)
	ui.SetCurrentTheme(ui.NoColorTheme)

	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	first := mockS.EXPECT().UpdateSuffix(gomock.Any())
	start := mockS.EXPECT().Start().After(first)
	mockS.EXPECT().UpdateSuffix(gomock.Any()).Times(2).After(start)
	mockS.EXPECT().Stop()

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.Update)
	var out bytes.Buffer

	go DisplayProgress(&wg, progressChan, 2, &out)
	progressChan <- progress.Update{Index: 1, Completed: 1, Total: 2}
	progressChan <- progress.Update{Index: 0, Completed: 2, Total: 2}
	close(progressChan)
	wg.Wait()

	if !strings.Contains(out.String(), "100% 2/2 workers") {
		t.Errorf("final line missing, got %q", out.String())
	}
}

func TestDisplayProgress_ReportsFailures(t *testing.T) {
	orig := ui.GetCurrentTheme()
	defer ui.SetCurrentTheme(orig)
	ui.SetCurrentTheme(ui.NoColorTheme)

	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)
	newSpinner = func(options ...spinner.Option) Spinner { return mockS }
	mockS.EXPECT().Start()
	mockS.EXPECT().Stop()
	mockS.EXPECT().UpdateSuffix(gomock.Any()).AnyTimes()

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.Update, 1)
	progressChan <- progress.Update{Index: 0, Completed: 1, Total: 3, Err: errors.New("exit status 1")}
	close(progressChan)

	var out bytes.Buffer
	DisplayProgress(&wg, progressChan, 3, &out)
	wg.Wait()

	if !strings.Contains(out.String(), "1/3 workers (1 failed)") {
		t.Errorf("unexpected final line %q", out.String())
	}
}

func TestDisplayProgress_ZeroWorkers(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.Update)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestNullProgressReporter(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.Update, 2)
	progressChan <- progress.Update{Completed: 1, Total: 2}
	progressChan <- progress.Update{Completed: 2, Total: 2}
	close(progressChan)

	var out bytes.Buffer
	NullProgressReporter{}.DisplayProgress(&wg, progressChan, 2, &out)
	wg.Wait()
	if out.Len() != 0 {
		t.Errorf("NullProgressReporter wrote %q", out.String())
	}
}
