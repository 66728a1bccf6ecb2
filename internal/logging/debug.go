package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

var (
	verbose atomic.Bool
	logger  = log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
)

// DebugEnabled returns true if debug mode is enabled via TL_DEBUG or verbose configuration
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("TL_DEBUG") != ""
}

// SetVerbose turns debug output on or off regardless of TL_DEBUG
func SetVerbose(enabled bool) {
	verbose.Store(enabled)
}

// SetOutput redirects all log output, used by tests and the serve command
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		logger.Printf("DEBUG "+format, args...)
	}
}

// Debugln prints a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		logger.Print("DEBUG " + fmt.Sprintln(args...))
	}
}

// Infof logs an informational message
func Infof(format string, args ...interface{}) {
	logger.Printf("INFO "+format, args...)
}

// Warnf logs a warning
func Warnf(format string, args ...interface{}) {
	logger.Printf("WARN "+format, args...)
}

// Errorf logs an error
func Errorf(format string, args ...interface{}) {
	logger.Printf("ERROR "+format, args...)
}
