package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/agbru/pireduce/internal/shm"
)

// ProcessBackend runs each worker as a child process re-executing Path.
type ProcessBackend struct {
	// Path is the worker executable. Empty means the running binary.
	Path string
	// Stderr receives the workers' diagnostics. Nil discards them.
	Stderr io.Writer
	// LogLevel is forwarded to the workers' loggers.
	LogLevel string
}

var _ Backend = (*ProcessBackend)(nil)

func (b *ProcessBackend) Mode() string { return ModeProcess }

func (b *ProcessBackend) Allocate(slots int) (shm.Accumulator, error) {
	return shm.Allocate(slots)
}

func (b *ProcessBackend) Launch(_ context.Context, acc shm.Accumulator, a Assignment) (Worker, error) {
	region, ok := acc.(*shm.Region)
	if !ok {
		return nil, fmt.Errorf("process workers need a shared region, got %T", acc)
	}
	path := b.Path
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locate worker executable: %w", err)
		}
		path = exe
	}

	cmd := exec.Command(path)
	cmd.Env = append(os.Environ(), workerEnviron(a, acc.Slots(), b.LogLevel)...)
	cmd.ExtraFiles = []*os.File{region.File()}
	cmd.Stderr = b.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &processWorker{index: a.Index, cmd: cmd}, nil
}

func workerEnviron(a Assignment, slots int, logLevel string) []string {
	env := []string{
		WorkerEnv + "=1",
		workerEnvPrefix + "_RUN_ID=" + a.RunID,
		workerEnvPrefix + "_INDEX=" + strconv.Itoa(a.Index),
		workerEnvPrefix + "_START=" + strconv.Itoa(a.Range.Start),
		workerEnvPrefix + "_END=" + strconv.Itoa(a.Range.End),
		workerEnvPrefix + "_TOTAL_UNITS=" + strconv.Itoa(a.TotalUnits),
		workerEnvPrefix + "_SLOTS=" + strconv.Itoa(slots),
	}
	if logLevel != "" {
		env = append(env, workerEnvPrefix+"_LOG_LEVEL="+logLevel)
	}
	return env
}

type processWorker struct {
	index int
	cmd   *exec.Cmd
}

func (w *processWorker) Wait() error {
	return w.cmd.Wait()
}

func (w *processWorker) Kill() error {
	if err := w.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func (w *processWorker) String() string {
	return fmt.Sprintf("worker %d (pid %d)", w.index, w.cmd.Process.Pid)
}
