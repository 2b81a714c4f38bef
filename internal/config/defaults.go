package config

import "runtime"

// DefaultMode returns the backend used when neither a flag, the environment
// nor a config file selects one. Process workers need shared mappings, which
// are only implemented on Unix.
func DefaultMode() string {
	switch runtime.GOOS {
	case "windows", "plan9", "js", "wasip1":
		return ModeThread
	default:
		return ModeProcess
	}
}
