// Package engine is the parallel reduction engine. It owns the per-run
// [EngineState], partitions the work, and drives the worker coordinator
// through Idle → Spawning → AwaitingCompletion → Done.
//
// Two backends launch workers. [ProcessBackend] re-executes the current
// binary once per range; each child finds its assignment in PIREDUCE_WORKER_*
// environment variables and the shared accumulator on file descriptor 3.
// [ThreadBackend] runs one goroutine per range over heap memory; it trades
// per-worker fault isolation for zero process start-up cost.
//
// Any binary that may act as a process worker must call [IsWorkerProcess]
// first thing in main (or TestMain) and hand control to [RunWorker].
package engine
