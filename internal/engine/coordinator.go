package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/pireduce/internal/errors"
	"github.com/agbru/pireduce/internal/integrand"
	"github.com/agbru/pireduce/internal/logging"
	"github.com/agbru/pireduce/internal/metrics"
	"github.com/agbru/pireduce/internal/progress"
	"github.com/agbru/pireduce/internal/shm"
)

const tracerName = "github.com/agbru/pireduce/internal/engine"

// Result is the outcome of a successful solve.
type Result struct {
	// Sum is the reduced integral over [0, 1).
	Sum float64
	// Estimate is Sum scaled to the full circle, the estimate of π.
	Estimate float64
	// Partials holds each worker's partial sum in index order.
	Partials []float64
	// Workers is the number of workers that ran.
	Workers int
	// Duration covers allocation through the final read.
	Duration time.Duration
}

// Coordinator spawns one worker per range, waits for all of them and reads
// the reduced value.
type Coordinator struct {
	backend  Backend
	logger   logging.Logger
	recorder metrics.Recorder
	progress chan<- progress.Update
	tracer   trace.Tracer
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the coordinator's logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Coordinator) { c.recorder = r }
}

// WithProgress publishes one update per finished worker on ch. The caller
// owns ch and must keep draining it until Solve returns.
func WithProgress(ch chan<- progress.Update) Option {
	return func(c *Coordinator) { c.progress = ch }
}

// NewCoordinator returns a coordinator launching workers through b.
func NewCoordinator(b Backend, opts ...Option) *Coordinator {
	c := &Coordinator{
		backend:  b,
		logger:   logging.NopLogger{},
		recorder: metrics.NopRecorder{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type launched struct {
	index  int
	worker Worker
	at     time.Time
}

// Solve runs the reduction described by st. On any failure every launched
// worker has been killed and reaped and the accumulator released before
// Solve returns; no partial result is produced.
func (c *Coordinator) Solve(ctx context.Context, st *EngineState) (res Result, err error) {
	start := time.Now()
	mode := c.backend.Mode()
	ctx, span := c.tracer.Start(ctx, "engine.Solve", trace.WithAttributes(
		attribute.String("pireduce.run_id", st.RunID),
		attribute.String("pireduce.mode", mode),
		attribute.Int("pireduce.workers", st.Spec.WorkerCount),
		attribute.Int("pireduce.total_units", st.Spec.TotalUnits),
	))
	defer func() {
		c.recorder.SolveFinished(mode, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := st.transition(Spawning); err != nil {
		return Result{}, err
	}

	acc, err := c.backend.Allocate(len(st.Ranges))
	if err != nil {
		_ = st.transition(Failed)
		return Result{}, apperrors.ResourceError{Op: "allocate accumulator", Cause: err}
	}
	defer func() {
		if relErr := acc.Release(); relErr != nil {
			c.logger.Error("release accumulator", relErr, logging.String("run_id", st.RunID))
		}
	}()

	workers, err := c.spawn(ctx, st, acc)
	if err != nil {
		_ = st.transition(Failed)
		return Result{}, err
	}
	if err := st.transition(AwaitingCompletion); err != nil {
		return Result{}, err
	}

	if err := c.await(ctx, st, workers); err != nil {
		_ = st.transition(Failed)
		return Result{}, err
	}
	if err := st.transition(Done); err != nil {
		return Result{}, err
	}

	sum := acc.Sum()
	res = Result{
		Sum:      sum,
		Estimate: sum * integrand.Scale,
		Partials: acc.Values(),
		Workers:  len(workers),
		Duration: time.Since(start),
	}
	c.logger.Debug("solve complete",
		logging.String("run_id", st.RunID),
		logging.Float64("estimate", res.Estimate),
		logging.Duration("duration", res.Duration),
	)
	return res, nil
}

func (c *Coordinator) spawn(ctx context.Context, st *EngineState, acc shm.Accumulator) ([]launched, error) {
	ctx, span := c.tracer.Start(ctx, "engine.Spawn")
	defer span.End()

	workers := make([]launched, 0, len(st.Ranges))
	for i, r := range st.Ranges {
		if err := ctx.Err(); err != nil {
			c.reap(st, workers)
			return nil, apperrors.WrapError(err, "spawn workers")
		}
		a := Assignment{RunID: st.RunID, Index: i, Range: r, TotalUnits: st.Spec.TotalUnits}
		w, err := c.backend.Launch(ctx, acc, a)
		if err != nil {
			c.logger.Error("launch worker", err, logging.String("run_id", st.RunID), logging.Int("worker", i))
			c.reap(st, workers)
			span.RecordError(err)
			return nil, apperrors.ResourceError{Op: fmt.Sprintf("spawn worker %d", i), Cause: err}
		}
		c.recorder.WorkerSpawned(c.backend.Mode())
		c.logger.Debug("worker launched",
			logging.String("run_id", st.RunID),
			logging.Int("worker", i),
			logging.String("range", r.String()),
			logging.String("handle", fmt.Sprint(w)),
		)
		workers = append(workers, launched{index: i, worker: w, at: time.Now()})
	}
	span.SetAttributes(attribute.Int("pireduce.spawned", len(workers)))
	return workers, nil
}

// await is the join barrier. It returns once every worker has terminated.
// The first failure, or the end of ctx, kills the remaining workers.
func (c *Coordinator) await(ctx context.Context, st *EngineState, workers []launched) error {
	ctx, span := c.tracer.Start(ctx, "engine.Await")
	defer span.End()

	mode := c.backend.Mode()
	failCtx, fail := context.WithCancel(ctx)
	defer fail()
	killed := make(chan struct{})
	stop := context.AfterFunc(failCtx, func() {
		defer close(killed)
		c.killAll(workers)
	})

	var (
		g         errgroup.Group
		completed atomic.Int64
	)
	for _, lw := range workers {
		g.Go(func() error {
			err := lw.worker.Wait()
			c.recorder.WorkerFinished(mode, time.Since(lw.at), err)
			n := completed.Add(1)
			if c.progress != nil {
				c.progress <- progress.Update{Index: lw.index, Completed: int(n), Total: len(workers), Err: err}
			}
			if err != nil {
				fail()
				return apperrors.WorkerError{Index: lw.index, Cause: err}
			}
			c.logger.Debug("worker finished", logging.String("run_id", st.RunID), logging.Int("worker", lw.index))
			return nil
		})
	}

	err := g.Wait()
	if !stop() {
		<-killed
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return apperrors.WrapError(ctxErr, "await workers")
	}
	return err
}

func (c *Coordinator) killAll(workers []launched) {
	for _, lw := range workers {
		if err := lw.worker.Kill(); err != nil {
			c.logger.Error("kill worker", err, logging.Int("worker", lw.index))
		}
	}
}

// reap kills and waits for workers launched before a spawn failure.
func (c *Coordinator) reap(st *EngineState, workers []launched) {
	c.killAll(workers)
	for _, lw := range workers {
		_ = lw.worker.Wait()
	}
	if len(workers) > 0 {
		c.logger.Debug("reaped workers after spawn failure",
			logging.String("run_id", st.RunID), logging.Int("count", len(workers)))
	}
}
