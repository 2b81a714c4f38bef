package partition

import (
	"fmt"

	apperrors "github.com/agbru/pireduce/internal/errors"
)

// WorkSpec is the immutable description of one reduction: how many
// discretization points to evaluate and how many workers share them.
// WorkerCount may exceed TotalUnits, in which case trailing workers receive
// empty ranges.
type WorkSpec struct {
	TotalUnits  int
	WorkerCount int
}

// NewWorkSpec validates and returns a WorkSpec.
func NewWorkSpec(totalUnits, workerCount int) (WorkSpec, error) {
	if workerCount < 1 {
		return WorkSpec{}, apperrors.NewConfigError("worker count must be at least 1, got %d", workerCount)
	}
	if totalUnits < 0 {
		return WorkSpec{}, apperrors.NewConfigError("total units must not be negative, got %d", totalUnits)
	}
	return WorkSpec{TotalUnits: totalUnits, WorkerCount: workerCount}, nil
}

// Range is the half-open interval [Start, End) of unit indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of units in the range.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range holds no units.
func (r Range) Empty() bool { return r.End <= r.Start }

func (r Range) String() string { return fmt.Sprintf("[%d, %d)", r.Start, r.End) }

// Partition divides [0, totalUnits) into exactly workerCount consecutive
// ranges. The first totalUnits%workerCount ranges hold one extra unit.
func Partition(totalUnits, workerCount int) ([]Range, error) {
	spec, err := NewWorkSpec(totalUnits, workerCount)
	if err != nil {
		return nil, err
	}
	return spec.Ranges(), nil
}

// Ranges returns the partition of the spec. The spec must be valid.
func (s WorkSpec) Ranges() []Range {
	base := s.TotalUnits / s.WorkerCount
	extra := s.TotalUnits % s.WorkerCount

	ranges := make([]Range, s.WorkerCount)
	start := 0
	for i := range ranges {
		size := base
		if i < extra {
			size++
		}
		ranges[i] = Range{Start: start, End: start + size}
		start += size
	}
	return ranges
}
