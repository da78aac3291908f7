package renderer

import (
	"fmt"
	"os"
)

// Logger interface for render progress output
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultLogger writes progress to stderr so it never mixes with pipeline
// output on stdout.
type DefaultLogger struct{}

func (DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// NopLogger discards all progress output.
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
