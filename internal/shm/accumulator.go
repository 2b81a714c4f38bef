package shm

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
)

// SlotSize is the size in bytes of one accumulator slot.
const SlotSize = 8

// ErrSlotRange is returned when a slot index is outside the accumulator.
var ErrSlotRange = errors.New("slot index out of range")

// Accumulator is the reduction target shared by the parent and its workers.
type Accumulator interface {
	// Store writes v into slot i. Each slot is written at most once.
	Store(i int, v float64) error
	// Values returns a copy of every slot in index order.
	Values() []float64
	// Sum returns the sum of all slots in index order.
	Sum() float64
	// Slots returns the number of slots.
	Slots() int
	// Release frees the backing memory. It is safe to call more than once.
	Release() error
}

// Heap is an Accumulator over ordinary process memory.
type Heap struct {
	slots []atomic.Uint64
}

var _ Accumulator = (*Heap)(nil)

// NewHeap returns a zeroed heap accumulator with n slots.
func NewHeap(n int) (*Heap, error) {
	if n < 1 {
		return nil, fmt.Errorf("accumulator needs at least one slot, got %d", n)
	}
	return &Heap{slots: make([]atomic.Uint64, n)}, nil
}

func (h *Heap) Store(i int, v float64) error {
	if i < 0 || i >= len(h.slots) {
		return fmt.Errorf("%w: %d of %d", ErrSlotRange, i, len(h.slots))
	}
	h.slots[i].Store(math.Float64bits(v))
	return nil
}

func (h *Heap) Values() []float64 {
	out := make([]float64, len(h.slots))
	for i := range h.slots {
		out[i] = math.Float64frombits(h.slots[i].Load())
	}
	return out
}

func (h *Heap) Sum() float64 { return floats.Sum(h.Values()) }

func (h *Heap) Slots() int { return len(h.slots) }

func (h *Heap) Release() error { return nil }
