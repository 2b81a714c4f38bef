//go:build unix

package shm

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestAllocate(t *testing.T) {
	t.Parallel()

	r, err := Allocate(4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Release() })

	assert.Equal(t, 4, r.Slots())
	assert.NotNil(t, r.File())
	assert.Equal(t, []float64{0, 0, 0, 0}, r.Values())

	require.NoError(t, r.Store(1, 0.125))
	require.NoError(t, r.Store(3, 0.5))
	assert.InDelta(t, 0.625, r.Sum(), 1e-15)
	assert.ErrorIs(t, r.Store(-1, 1), ErrSlotRange)
}

func TestAllocate_NoSlots(t *testing.T) {
	t.Parallel()
	_, err := Allocate(0)
	assert.Error(t, err)
}

// TestOpen_SharesPages maps the same file a second time, as a child process
// does after inheriting the descriptor, and checks both views see each
// other's stores.
func TestOpen_SharesPages(t *testing.T) {
	t.Parallel()

	parent, err := Allocate(2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = parent.Release() })

	fd, err := unix.Dup(int(parent.File().Fd()))
	require.NoError(t, err)
	child, err := Open(os.NewFile(uintptr(fd), "dup"), 2)
	require.NoError(t, err)

	require.NoError(t, child.Store(1, 0.75))
	assert.Equal(t, 0.75, parent.Values()[1])

	require.NoError(t, child.Release())
	assert.Equal(t, 0.75, parent.Sum(), "stores survive the writer unmapping")
}

func TestOpen_TooSmall(t *testing.T) {
	t.Parallel()

	r, err := Allocate(1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Release() })

	fd, err := unix.Dup(int(r.File().Fd()))
	require.NoError(t, err)
	f := os.NewFile(uintptr(fd), "dup")
	t.Cleanup(func() { _ = f.Close() })

	_, err = Open(f, 1024)
	assert.Error(t, err)
}

func TestRelease_Idempotent(t *testing.T) {
	t.Parallel()
	r, err := Allocate(1)
	require.NoError(t, err)
	assert.NoError(t, r.Release())
	assert.NoError(t, r.Release())
}
