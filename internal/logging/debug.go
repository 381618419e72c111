package logging

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

var (
	verbose atomic.Bool
	output  io.Writer = os.Stderr
)

// DebugEnabled returns true if debug mode is enabled via the METRONOME_DEBUG
// environment variable or SetVerbose
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("METRONOME_DEBUG") != ""
}

// SetVerbose turns debug output on or off regardless of the environment
func SetVerbose(v bool) {
	verbose.Store(v)
}

// SetOutput redirects debug output and returns the previous writer.
// Debug output goes to stderr by default so stdout stays clean for exports
func SetOutput(w io.Writer) io.Writer {
	prev := output
	output = w
	return prev
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(output, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(output, args...)
	}
}
