// Package shm provides the shared accumulator of the reduction engine.
//
// An accumulator holds one float64 slot per worker. Each worker stores its
// partial sum into its own slot exactly once with an atomic 64-bit store, and
// the parent sums the slots in index order only after every worker has
// terminated. No two writers ever touch the same slot, so no locking is
// needed and the reduced value does not depend on completion order.
//
// # Region
//
// [Region] is backed by an anonymous memory file (memfd on Linux, an
// unlinked temporary file on other Unix systems) mapped MAP_SHARED. The
// parent allocates it with [Allocate] and hands [Region.File] to child
// processes, which map the same pages with [Open]. The file has no name in
// any filesystem namespace, so unrelated processes cannot reach it.
//
// # Heap
//
// [Heap] has the same contract over ordinary process memory and serves the
// goroutine-based engine mode.
package shm
