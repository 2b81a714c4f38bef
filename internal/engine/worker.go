package engine

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	apperrors "github.com/agbru/pireduce/internal/errors"
	"github.com/agbru/pireduce/internal/logging"
	"github.com/agbru/pireduce/internal/partition"
	"github.com/agbru/pireduce/internal/shm"
)

// WorkerEnv marks a process started by ProcessBackend.
const WorkerEnv = "PIREDUCE_WORKER"

const (
	workerEnvPrefix = WorkerEnv
	// accumulatorFD is the first ExtraFiles descriptor in the child.
	accumulatorFD = 3
)

type workerSpec struct {
	RunID      string `envconfig:"RUN_ID"`
	Index      int    `envconfig:"INDEX" required:"true"`
	Start      int    `envconfig:"START" required:"true"`
	End        int    `envconfig:"END" required:"true"`
	TotalUnits int    `envconfig:"TOTAL_UNITS" required:"true"`
	Slots      int    `envconfig:"SLOTS" required:"true"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"warn"`
}

func (s workerSpec) validate() error {
	switch {
	case s.Slots < 1:
		return fmt.Errorf("slot count %d", s.Slots)
	case s.Index < 0 || s.Index >= s.Slots:
		return fmt.Errorf("index %d outside %d slots", s.Index, s.Slots)
	case s.Start < 0 || s.End < s.Start || s.End > s.TotalUnits:
		return fmt.Errorf("range [%d, %d) outside [0, %d)", s.Start, s.End, s.TotalUnits)
	}
	return nil
}

// IsWorkerProcess reports whether this process was started as a worker.
func IsWorkerProcess() bool {
	return os.Getenv(WorkerEnv) == "1"
}

// RunWorker executes the worker kernel for the assignment in the
// environment, stores the result in the inherited accumulator and returns
// the process exit code.
func RunWorker(stderr io.Writer) int {
	// The configured level is only known once the environment decodes.
	boot := logging.NewConsoleLogger(stderr, "worker", zerolog.ErrorLevel)
	var spec workerSpec
	if err := envconfig.Process(workerEnvPrefix, &spec); err != nil {
		boot.Error("decode assignment", err)
		return apperrors.ExitErrorConfig
	}
	level, err := logging.ParseLevel(spec.LogLevel)
	if err != nil {
		boot.Error("decode assignment", err)
		return apperrors.ExitErrorConfig
	}
	logger := logging.NewConsoleLogger(stderr, "worker", level).With(
		logging.String("run_id", spec.RunID),
		logging.Int("worker", spec.Index),
	)
	if err := spec.validate(); err != nil {
		logger.Error("invalid assignment", err)
		return apperrors.ExitErrorConfig
	}

	region, err := shm.Open(os.NewFile(accumulatorFD, "accumulator"), spec.Slots)
	if err != nil {
		logger.Error("open accumulator", err)
		return apperrors.ExitErrorResource
	}
	defer region.Release()

	a := Assignment{
		RunID:      spec.RunID,
		Index:      spec.Index,
		Range:      partition.Range{Start: spec.Start, End: spec.End},
		TotalUnits: spec.TotalUnits,
	}
	if err := compute(context.Background(), region, a); err != nil {
		logger.Error("compute partial sum", err)
		return apperrors.ExitErrorGeneric
	}
	logger.Debug("partial sum stored", logging.String("range", a.Range.String()))
	return apperrors.ExitSuccess
}
