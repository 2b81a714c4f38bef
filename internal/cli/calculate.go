package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/pireduce/internal/config"
	"github.com/agbru/pireduce/internal/ui"
)

// PrintExecutionConfig displays the execution configuration: the worker
// layout, backend, timeout and environment details.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Integrating over %s%d%s points with %s%d%s %s workers, timeout %s%s%s.\n",
		ui.ColorPrimary(), cfg.TotalUnits, ui.ColorReset(),
		ui.ColorPrimary(), cfg.WorkerCount, ui.ColorReset(), cfg.Mode,
		ui.ColorWarning(), timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorPrimary(), runtime.NumCPU(), ui.ColorReset(), ui.ColorPrimary(), runtime.Version(), ui.ColorReset())
}
