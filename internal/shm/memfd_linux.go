//go:build linux

package shm

import (
	"os"

	"golang.org/x/sys/unix"
)

func newAnonymousFile(size int64) (*os.File, error) {
	fd, err := unix.MemfdCreate("pireduce-accumulator", unix.MFD_CLOEXEC)
	if err != nil {
		return nil, err
	}
	if err := unix.Ftruncate(fd, size); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return os.NewFile(uintptr(fd), "pireduce-accumulator"), nil
}
