package config

import (
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	apperrors "github.com/agbru/pireduce/internal/errors"
)

// FileConfig mirrors the flags that may be set from a TOML file:
//
//	mode = "thread"
//	timeout = "30s"
//	log_level = "info"
//	progress = true
//	theme = "light"
//	metrics_file = "/var/lib/node_exporter/pireduce.prom"
//
// Unset keys leave the flag default in place.
type FileConfig struct {
	Mode        *string `toml:"mode"`
	Timeout     *string `toml:"timeout"`
	LogLevel    *string `toml:"log_level"`
	Progress    *bool   `toml:"progress"`
	Theme       *string `toml:"theme"`
	MetricsFile *string `toml:"metrics_file"`

	timeout time.Duration
}

// LoadFile decodes the TOML file at path. Unknown keys and malformed values
// are configuration errors.
func LoadFile(path string) (FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("open config file: %v", err)
	}
	defer f.Close()

	var fc FileConfig
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return FileConfig{}, apperrors.NewConfigError("config file %s: %s", path, strings.TrimSpace(strict.String()))
		}
		return FileConfig{}, apperrors.NewConfigError("config file %s: %v", path, err)
	}
	if fc.Timeout != nil {
		if fc.timeout, err = time.ParseDuration(*fc.Timeout); err != nil {
			return FileConfig{}, apperrors.NewConfigError("config file %s: timeout: %v", path, err)
		}
	}
	return fc, nil
}

// apply copies file values into config for flags not set on the command line.
func (fc FileConfig) apply(config *AppConfig, fs *flag.FlagSet) {
	if fc.Mode != nil && !isFlagSet(fs, "mode") {
		config.Mode = strings.ToLower(*fc.Mode)
	}
	if fc.Timeout != nil && !isFlagSet(fs, "timeout") {
		config.Timeout = fc.timeout
	}
	if fc.LogLevel != nil && !isFlagSet(fs, "log-level") {
		config.LogLevel = *fc.LogLevel
	}
	if fc.Progress != nil && !isFlagSet(fs, "progress") {
		config.Progress = *fc.Progress
	}
	if fc.Theme != nil && !isFlagSet(fs, "theme") {
		config.Theme = strings.ToLower(*fc.Theme)
	}
	if fc.MetricsFile != nil && !isFlagSet(fs, "metrics-file") {
		config.MetricsFile = *fc.MetricsFile
	}
}
