// Package ui provides theme and color support for the diagnostic output
// pireduce writes to stderr. It defines color schemes and ANSI escape code
// accessors so presentation code stays free of raw escape sequences.
package ui
