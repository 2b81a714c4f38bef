// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayEstimate], [DisplaySummary], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatEstimate], [FormatProgress].

package cli

import (
	"fmt"
	"io"

	"github.com/agbru/pireduce/internal/engine"
	"github.com/agbru/pireduce/internal/format"
	"github.com/agbru/pireduce/internal/sysmon"
	"github.com/agbru/pireduce/internal/ui"
)

// EstimatePrecision is the number of fractional digits printed.
const EstimatePrecision = 12

// FormatEstimate renders the estimate the way it is printed on stdout.
func FormatEstimate(estimate float64) string {
	return fmt.Sprintf("%.*f", EstimatePrecision, estimate)
}

// DisplayEstimate writes the single result line.
func DisplayEstimate(out io.Writer, estimate float64) error {
	_, err := fmt.Fprintln(out, FormatEstimate(estimate))
	return err
}

// DisplaySummary writes a human-readable breakdown of a solve: the per-worker
// partial sums and the elapsed time.
func DisplaySummary(out io.Writer, res engine.Result) {
	fmt.Fprintf(out, "%s--- Reduction Summary ---%s\n", ui.ColorBold(), ui.ColorReset())
	for i, p := range res.Partials {
		fmt.Fprintf(out, "  worker %-4d %s%.15f%s\n", i, ui.ColorSecondary(), p, ui.ColorReset())
	}
	fmt.Fprintf(out, "  sum         %.15f\n", res.Sum)
	fmt.Fprintf(out, "  estimate    %s%s%s\n", ui.ColorPrimary(), FormatEstimate(res.Estimate), ui.ColorReset())
	fmt.Fprintf(out, "  duration    %s\n", format.FormatExecutionDuration(res.Duration))
}

// DisplayHostStats writes the system-wide usage observed during the solve.
func DisplayHostStats(out io.Writer, s sysmon.Stats) {
	fmt.Fprintf(out, "  host        cpu %.1f%%, memory %.1f%% over %s\n",
		s.CPUPercent, s.MemPercent, format.FormatExecutionDuration(s.Window))
}
