//go:build unix && !linux

package shm

import "os"

// newAnonymousFile creates a temporary file and unlinks it immediately so it
// is reachable only through the returned descriptor.
func newAnonymousFile(size int64) (*os.File, error) {
	f, err := os.CreateTemp("", "pireduce-accumulator-*")
	if err != nil {
		return nil, err
	}
	if err := os.Remove(f.Name()); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
