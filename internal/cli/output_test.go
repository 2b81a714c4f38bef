package cli

import (
	"bytes"
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/agbru/pireduce/internal/config"
	"github.com/agbru/pireduce/internal/engine"
	"github.com/agbru/pireduce/internal/sysmon"
	"github.com/agbru/pireduce/internal/ui"
)

func TestFormatEstimate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		estimate float64
		want     string
	}{
		{math.Pi, "3.141592653590"},
		{0, "0.000000000000"},
		{3.4641016151377544, "3.464101615138"},
	}
	for _, tt := range tests {
		if got := FormatEstimate(tt.estimate); got != tt.want {
			t.Errorf("FormatEstimate(%v) = %q, want %q", tt.estimate, got, tt.want)
		}
	}
}

func TestDisplayEstimate(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := DisplayEstimate(&buf, 3.14159265358979); err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`^3\.14\d{10}\n$`).MatchString(buf.String()) {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDisplaySummary(t *testing.T) {
	orig := ui.GetCurrentTheme()
	defer ui.SetCurrentTheme(orig)
	ui.SetCurrentTheme(ui.NoColorTheme)

	var buf bytes.Buffer
	DisplaySummary(&buf, engine.Result{
		Sum:      0.75,
		Estimate: 3,
		Partials: []float64{0.5, 0.25},
		Workers:  2,
		Duration: 12 * time.Millisecond,
	})
	out := buf.String()
	for _, want := range []string{"worker 0", "worker 1", "0.250000000000000", "3.000000000000", "12ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPrintExecutionConfig(t *testing.T) {
	orig := ui.GetCurrentTheme()
	defer ui.SetCurrentTheme(orig)
	ui.SetCurrentTheme(ui.NoColorTheme)

	var buf bytes.Buffer
	PrintExecutionConfig(config.AppConfig{WorkerCount: 4, TotalUnits: 1000, Mode: config.ModeThread}, &buf)
	out := buf.String()
	if !strings.Contains(out, "1000 points with 4 thread workers, timeout none") {
		t.Errorf("unexpected configuration line:\n%s", out)
	}
	if !strings.Contains(out, "logical processors") {
		t.Errorf("environment line missing:\n%s", out)
	}
}

func TestDisplayHostStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayHostStats(&buf, sysmon.Stats{CPUPercent: 99.04, MemPercent: 12.5, Window: 250 * time.Millisecond})
	if !strings.Contains(buf.String(), "cpu 99.0%, memory 12.5% over 250ms") {
		t.Errorf("unexpected host line %q", buf.String())
	}
}
