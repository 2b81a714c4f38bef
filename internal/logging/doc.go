// Package logging provides a unified logging interface for the reduction
// engine. It abstracts the underlying logging implementation, allowing
// consistent logging across the parent process and its workers while
// supporting multiple backends.
package logging
