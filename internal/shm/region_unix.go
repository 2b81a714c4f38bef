//go:build unix

package shm

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
	"gonum.org/v1/gonum/floats"
)

// Region is an Accumulator backed by a MAP_SHARED mapping of an anonymous
// memory file.
type Region struct {
	mu    sync.Mutex
	file  *os.File
	mem   []byte
	slots int
}

var _ Accumulator = (*Region)(nil)

// Allocate creates and maps a zeroed region with n slots.
func Allocate(n int) (*Region, error) {
	if n < 1 {
		return nil, fmt.Errorf("accumulator needs at least one slot, got %d", n)
	}
	f, err := newAnonymousFile(int64(n) * SlotSize)
	if err != nil {
		return nil, fmt.Errorf("create shared memory file: %w", err)
	}
	r, err := mapRegion(f, n)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Open maps an existing region inherited from the parent. The region takes
// ownership of f.
func Open(f *os.File, n int) (*Region, error) {
	if n < 1 {
		return nil, fmt.Errorf("accumulator needs at least one slot, got %d", n)
	}
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat shared memory file: %w", err)
	}
	if info.Size() < int64(n)*SlotSize {
		return nil, fmt.Errorf("shared memory file holds %d bytes, need %d", info.Size(), int64(n)*SlotSize)
	}
	return mapRegion(f, n)
}

func mapRegion(f *os.File, n int) (*Region, error) {
	mem, err := unix.Mmap(int(f.Fd()), 0, n*SlotSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap shared memory: %w", err)
	}
	return &Region{file: f, mem: mem, slots: n}, nil
}

// File returns the file backing the region, for passing to child processes.
func (r *Region) File() *os.File { return r.file }

func (r *Region) slot(i int) *uint64 {
	// mmap returns page-aligned memory, so every slot is 8-byte aligned.
	return (*uint64)(unsafe.Pointer(&r.mem[i*SlotSize]))
}

func (r *Region) Store(i int, v float64) error {
	if i < 0 || i >= r.slots {
		return fmt.Errorf("%w: %d of %d", ErrSlotRange, i, r.slots)
	}
	atomic.StoreUint64(r.slot(i), math.Float64bits(v))
	return nil
}

func (r *Region) Values() []float64 {
	out := make([]float64, r.slots)
	for i := range out {
		out[i] = math.Float64frombits(atomic.LoadUint64(r.slot(i)))
	}
	return out
}

func (r *Region) Sum() float64 { return floats.Sum(r.Values()) }

func (r *Region) Slots() int { return r.slots }

// Release unmaps the region and closes its file.
func (r *Region) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mem == nil {
		return nil
	}
	var errs []error
	if err := unix.Munmap(r.mem); err != nil {
		errs = append(errs, fmt.Errorf("munmap: %w", err))
	}
	r.mem = nil
	if err := r.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close shared memory file: %w", err))
	}
	return errors.Join(errs...)
}
