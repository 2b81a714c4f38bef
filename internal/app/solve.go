package app

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/agbru/pireduce/internal/cli"
	"github.com/agbru/pireduce/internal/engine"
	apperrors "github.com/agbru/pireduce/internal/errors"
	"github.com/agbru/pireduce/internal/logging"
	"github.com/agbru/pireduce/internal/metrics"
	"github.com/agbru/pireduce/internal/progress"
	"github.com/agbru/pireduce/internal/sysmon"
)

// runSolve orchestrates one reduction: lifecycle, backend, coordinator,
// progress rendering, metrics export and the result line.
func (a *Application) runSolve(ctx context.Context, out io.Writer) int {
	logger := a.newLogger()

	// Setup lifecycle (timeout + signals)
	if a.Config.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancelTimeout()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	st, err := engine.NewEngineState(a.Config.TotalUnits, a.Config.WorkerCount)
	if err != nil {
		return apperrors.HandleError(err, a.ErrWriter)
	}
	backend, err := a.newBackend()
	if err != nil {
		return apperrors.HandleError(apperrors.NewConfigError("%v", err), a.ErrWriter)
	}

	var recorder metrics.Recorder = metrics.NopRecorder{}
	var prom *metrics.Prometheus
	if a.Config.MetricsFile != "" {
		prom = metrics.NewPrometheus()
		recorder = prom
	}

	opts := []engine.Option{engine.WithLogger(logger), engine.WithRecorder(recorder)}
	var (
		wg           sync.WaitGroup
		progressChan chan progress.Update
	)
	if a.Config.Progress {
		cli.PrintExecutionConfig(a.Config, a.ErrWriter)
		progressChan = make(chan progress.Update, a.Config.WorkerCount)
		opts = append(opts, engine.WithProgress(progressChan))
		wg.Add(1)
		go a.reporter.DisplayProgress(&wg, progressChan, a.Config.WorkerCount, a.ErrWriter)
	}

	logger.Info("starting solve",
		logging.String("run_id", st.RunID),
		logging.String("mode", backend.Mode()),
		logging.Int("workers", st.Spec.WorkerCount),
		logging.Int("total_units", st.Spec.TotalUnits),
	)
	window := sysmon.Begin()
	res, err := engine.NewCoordinator(backend, opts...).Solve(ctx, st)
	host := window.End()
	if progressChan != nil {
		close(progressChan)
		wg.Wait()
	}

	if prom != nil {
		prom.RecordHost(host)
		if werr := prom.WriteTextfile(a.Config.MetricsFile); werr != nil {
			logger.Error("write metrics file", werr, logging.String("path", a.Config.MetricsFile))
		}
	}

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.TimeoutError{Operation: "solve", Limit: a.Config.Timeout}
		}
		return apperrors.HandleError(err, a.ErrWriter)
	}

	if a.Config.Progress {
		cli.DisplaySummary(a.ErrWriter, res)
		cli.DisplayHostStats(a.ErrWriter, host)
	}
	logger.Info("solve complete",
		logging.String("run_id", st.RunID),
		logging.Float64("estimate", res.Estimate),
		logging.Duration("duration", res.Duration),
	)
	if err := cli.DisplayEstimate(out, res.Estimate); err != nil {
		return apperrors.HandleError(apperrors.WrapError(err, "write result"), a.ErrWriter)
	}
	return apperrors.ExitSuccess
}
