//go:build !unix

package shm

import (
	"errors"
	"os"
)

// Region is unavailable on this platform; use the thread engine mode.
type Region struct{ Heap }

// Allocate always fails on platforms without shared mappings.
func Allocate(int) (*Region, error) {
	return nil, errors.ErrUnsupported
}

// Open always fails on platforms without shared mappings.
func Open(*os.File, int) (*Region, error) {
	return nil, errors.ErrUnsupported
}

// File returns nil.
func (r *Region) File() *os.File { return nil }
