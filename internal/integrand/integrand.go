// Package integrand holds the worker kernel: a midpoint-rule partial sum of
// the quarter-circle f(x) = sqrt(1 - x²) over a range of discretization
// points on [0, 1).
package integrand

import (
	"context"
	"math"

	"github.com/agbru/pireduce/internal/partition"
)

// Func is a real integrand on [0, 1).
type Func func(x float64) float64

// QuarterCircle is f(x) = sqrt(1 - x²). Its integral over [0, 1) is π/4.
func QuarterCircle(x float64) float64 {
	return math.Sqrt(1 - x*x)
}

// Scale converts the quarter-circle integral into the estimate of π.
const Scale = 4

// cancelCheckInterval is the number of points evaluated between context checks.
const cancelCheckInterval = 1 << 16

// StepWidth returns the width of one discretization step, 1/totalUnits.
func StepWidth(totalUnits int) float64 {
	return 1.0 / float64(totalUnits)
}

// PartialSum computes Σ f(x_k)·h over k in r, with h = 1/totalUnits and
// x_k = k·h + h/2.
func PartialSum(f Func, r partition.Range, totalUnits int) float64 {
	if r.Empty() {
		return 0
	}
	h := StepWidth(totalUnits)
	acc := 0.0
	for k := r.Start; k < r.End; k++ {
		x := float64(k)*h + h/2
		acc += f(x) * h
	}
	return acc
}

// PartialSumContext is PartialSum with periodic cancellation checks. It
// returns ctx.Err() if the context ends before the range is exhausted.
func PartialSumContext(ctx context.Context, f Func, r partition.Range, totalUnits int) (float64, error) {
	if r.Empty() {
		return 0, ctx.Err()
	}
	h := StepWidth(totalUnits)
	acc := 0.0
	for k := r.Start; k < r.End; k++ {
		if (k-r.Start)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		x := float64(k)*h + h/2
		acc += f(x) * h
	}
	return acc, nil
}

// Midpoint evaluates the full midpoint rule sequentially over
// [0, totalUnits). Used as the single-worker reference.
func Midpoint(f Func, totalUnits int) float64 {
	return PartialSum(f, partition.Range{Start: 0, End: totalUnits}, totalUnits)
}
