// Package navlog is the host-side structured logger used by the route
// adapters, telemetry decorator, and demo binaries. The pure core
// (navigation, geo, navroute, stepadvance, deviation, instruction) never
// imports it: logging is an ambient, host-owned concern, not something
// the deterministic controller performs.
package navlog

import (
	"log"
	"os"
)

// Logger provides leveled logging over the standard library's log
// package.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
	debug *log.Logger
}

// New creates a Logger writing info/warn/debug to stdout and error to
// stderr, each tagged with a level prefix and file:line.
func New() *Logger {
	flags := log.LstdFlags | log.Lshortfile
	return &Logger{
		info:  log.New(os.Stdout, "[INFO] ", flags),
		warn:  log.New(os.Stdout, "[WARN] ", flags),
		error: log.New(os.Stderr, "[ERROR] ", flags),
		debug: log.New(os.Stdout, "[DEBUG] ", flags),
	}
}

// Info logs an info-level message.
func (l *Logger) Info(format string, v ...interface{}) { l.info.Printf(format, v...) }

// Warn logs a warning-level message.
func (l *Logger) Warn(format string, v ...interface{}) { l.warn.Printf(format, v...) }

// Error logs an error-level message.
func (l *Logger) Error(format string, v ...interface{}) { l.error.Printf(format, v...) }

// Debug logs a debug-level message.
func (l *Logger) Debug(format string, v ...interface{}) { l.debug.Printf(format, v...) }
