// Package progress defines the worker completion updates published by the
// engine while it waits at the join barrier.
package progress

// Update reports that one worker finished.
type Update struct {
	// Index is the 0-based index of the worker that finished.
	Index int
	// Completed is the number of workers finished so far, including this one.
	Completed int
	// Total is the number of workers in the run.
	Total int
	// Err is non-nil if the worker failed.
	Err error
}

// Fraction returns Completed/Total in [0, 1].
func (u Update) Fraction() float64 {
	if u.Total <= 0 {
		return 1
	}
	return float64(u.Completed) / float64(u.Total)
}
