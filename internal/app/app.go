package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agbru/pireduce/internal/cli"
	"github.com/agbru/pireduce/internal/config"
	"github.com/agbru/pireduce/internal/engine"
	"github.com/agbru/pireduce/internal/logging"
	"github.com/agbru/pireduce/internal/ui"
)

// Application represents the pireduce application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	backend  engine.Backend
	reporter cli.ProgressReporter
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithBackend replaces the backend selected by the mode option.
func WithBackend(b engine.Backend) AppOption {
	return func(a *Application) { a.backend = b }
}

// WithProgressReporter replaces the renderer used when progress is enabled.
func WithProgressReporter(r cli.ProgressReporter) AppOption {
	return func(a *Application) { a.reporter = r }
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, reporter: cli.CLIProgressReporter{}}
	for _, opt := range opts {
		opt(app)
	}

	programName := "pireduce"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run solves the configured reduction, prints the estimate to out and
// returns the process exit code. Diagnostics go to ErrWriter.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.Theme, !isTerminal(a.ErrWriter))
	return a.runSolve(ctx, out)
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (a *Application) newLogger() logging.Logger {
	// The level was validated by config.ParseConfig.
	level, _ := logging.ParseLevel(a.Config.LogLevel)
	return logging.NewConsoleLogger(a.ErrWriter, "pireduce", level)
}

func (a *Application) newBackend() (engine.Backend, error) {
	if a.backend != nil {
		return a.backend, nil
	}
	switch a.Config.Mode {
	case config.ModeProcess:
		return &engine.ProcessBackend{Stderr: a.ErrWriter, LogLevel: a.Config.LogLevel}, nil
	case config.ModeThread:
		return engine.ThreadBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", a.Config.Mode)
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
