package engine

import (
	"context"
	"fmt"

	"github.com/agbru/pireduce/internal/shm"
)

// ThreadBackend runs each worker as a goroutine over a heap accumulator.
type ThreadBackend struct{}

var _ Backend = ThreadBackend{}

func (ThreadBackend) Mode() string { return ModeThread }

func (ThreadBackend) Allocate(slots int) (shm.Accumulator, error) {
	return shm.NewHeap(slots)
}

func (ThreadBackend) Launch(ctx context.Context, acc shm.Accumulator, a Assignment) (Worker, error) {
	wctx, cancel := context.WithCancel(ctx)
	w := &threadWorker{index: a.Index, done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(w.done)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				w.err = fmt.Errorf("worker panic: %v", r)
			}
		}()
		w.err = compute(wctx, acc, a)
	}()
	return w, nil
}

type threadWorker struct {
	index  int
	done   chan struct{}
	cancel context.CancelFunc
	err    error
}

func (w *threadWorker) Wait() error {
	<-w.done
	return w.err
}

func (w *threadWorker) Kill() error {
	w.cancel()
	return nil
}

func (w *threadWorker) String() string { return fmt.Sprintf("goroutine worker %d", w.index) }
