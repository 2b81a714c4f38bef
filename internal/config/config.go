// Package config parses the pireduce command line, environment and optional
// TOML configuration file into an AppConfig.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/pireduce/internal/errors"
	"github.com/agbru/pireduce/internal/logging"
	"github.com/agbru/pireduce/internal/ui"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "PIREDUCE_"

// Execution modes.
const (
	ModeProcess = "process"
	ModeThread  = "thread"
)

// AppConfig is the resolved configuration of one invocation.
type AppConfig struct {
	// WorkerCount is the number of workers, the first positional argument.
	WorkerCount int
	// TotalUnits is the number of discretization points, the second
	// positional argument.
	TotalUnits int
	// Mode selects the worker backend, "process" or "thread".
	Mode string
	// Timeout bounds the whole solve. Zero disables it.
	Timeout time.Duration
	// LogLevel is the zerolog level name for diagnostics on stderr.
	LogLevel string
	// Progress renders a spinner on stderr while workers run.
	Progress bool
	// Theme names the color theme of the progress output: "dark", "light"
	// or "none".
	Theme string
	// MetricsFile, when set, receives a Prometheus text exposition after
	// the run.
	MetricsFile string
	// ConfigFile is the TOML file the configuration was read from, if any.
	ConfigFile string
}

// Validate checks the option values. Positional arguments are validated by
// the partitioner.
func (c AppConfig) Validate() error {
	if c.Mode != ModeProcess && c.Mode != ModeThread {
		return apperrors.NewConfigError("unknown mode %q (want %s or %s)", c.Mode, ModeProcess, ModeThread)
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("timeout must not be negative, got %s", c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if _, ok := ui.LookupTheme(c.Theme); !ok {
		return apperrors.NewConfigError("unknown theme %q (want dark, light or none)", c.Theme)
	}
	return nil
}

// ParseConfig builds the configuration from args (without the program name).
// Priority is command-line flags, then PIREDUCE_* environment variables,
// then the TOML file named by --config, then defaults. Flags may appear
// before, between or after the two positional integers.
//
// A --help request returns flag.ErrHelp after printing usage to errWriter.
// Other parse errors print nothing; the returned ConfigError carries the
// single diagnostic line.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	config := AppConfig{Mode: DefaultMode(), LogLevel: "warn", Theme: ui.DarkTheme.Name}
	fs.StringVar(&config.Mode, "mode", config.Mode, "worker backend: process or thread")
	fs.DurationVar(&config.Timeout, "timeout", 0, "abort the computation after this duration (0 disables)")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "diagnostic level: debug, info, warn or error")
	fs.BoolVar(&config.Progress, "progress", false, "show a progress spinner on stderr")
	fs.StringVar(&config.Theme, "theme", config.Theme, "progress color theme: dark, light or none")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	fs.StringVar(&config.ConfigFile, "config", "", "read defaults from this TOML file")
	fs.Bool("version", false, "print version information and exit")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(fs, programName, errWriter)
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = lookupEnv("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		fc, err := LoadFile(config.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		fc.apply(&config, fs)
	}
	applyEnvOverrides(&config, fs)

	if len(positional) != 2 {
		return AppConfig{}, apperrors.NewConfigError("expected 2 arguments <workerCount> <totalUnits>, got %d", len(positional))
	}
	if config.WorkerCount, err = strconv.Atoi(positional[0]); err != nil {
		return AppConfig{}, apperrors.NewConfigError("workerCount %q is not an integer", positional[0])
	}
	if config.TotalUnits, err = strconv.Atoi(positional[1]); err != nil {
		return AppConfig{}, apperrors.NewConfigError("totalUnits %q is not an integer", positional[1])
	}

	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

func printUsage(fs *flag.FlagSet, programName string, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [flags] <workerCount> <totalUnits>\n\n", programName)
	fmt.Fprintln(w, "Estimates pi with the midpoint rule over workerCount parallel workers.")
	fmt.Fprintln(w, "\nFlags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
}

// parseInterspersed parses flags that may be mixed with positional
// arguments and returns the positionals in order. Everything after a "--"
// terminator is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		before := len(args)
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if endedAtTerminator(fs, args[:before-len(rest)]) {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// endedAtTerminator reports whether the arguments fs.Parse consumed end
// with a "--" terminator, as opposed to a "--" taken as a flag value.
func endedAtTerminator(fs *flag.FlagSet, consumed []string) bool {
	for i := 0; i < len(consumed); i++ {
		if consumed[i] == "--" {
			return true
		}
		if takesValue(fs, consumed[i]) {
			i++
		}
	}
	return false
}

// takesValue reports whether arg is a flag whose value is the next argument.
func takesValue(fs *flag.FlagSet, arg string) bool {
	name := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	if name == arg || strings.Contains(name, "=") {
		return false
	}
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return false
	}
	return true
}
