//go:generate mockgen -destination=mocks/mock_engine.go -package=mocks github.com/agbru/pireduce/internal/engine Backend,Worker

package engine

import (
	"context"

	"github.com/agbru/pireduce/internal/integrand"
	"github.com/agbru/pireduce/internal/partition"
	"github.com/agbru/pireduce/internal/shm"
)

// Engine modes.
const (
	ModeProcess = "process"
	ModeThread  = "thread"
)

// Assignment is the read-only work handed to one worker.
type Assignment struct {
	RunID      string
	Index      int
	Range      partition.Range
	TotalUnits int
}

// Worker is a launched unit of work.
type Worker interface {
	// Wait blocks until the worker terminates. A nil error means the worker
	// stored its partial sum.
	Wait() error
	// Kill asks the worker to stop. It does not wait.
	Kill() error
}

// Backend allocates accumulators and launches workers.
type Backend interface {
	Mode() string
	Allocate(slots int) (shm.Accumulator, error)
	Launch(ctx context.Context, acc shm.Accumulator, a Assignment) (Worker, error)
}

// compute runs the worker kernel for a and stores the partial sum in its slot.
func compute(ctx context.Context, acc shm.Accumulator, a Assignment) error {
	sum, err := integrand.PartialSumContext(ctx, integrand.QuarterCircle, a.Range, a.TotalUnits)
	if err != nil {
		return err
	}
	return acc.Store(a.Index, sum)
}
