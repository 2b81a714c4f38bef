// Package partition splits a count of work units into contiguous, near-equal
// half-open ranges, one per worker.
package partition
