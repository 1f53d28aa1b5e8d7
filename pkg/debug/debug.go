// Package debug provides conditional diagnostic logging for form controllers.
//
// Logging is enabled by setting the FORMFIELD_DEBUG environment variable:
//
//	FORMFIELD_DEBUG=1 formfield-cli -source schema.yaml -schema Event
//
// When enabled, messages are written to stderr with timestamps. When disabled
// (default), every function is a no-op.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

const prefix = "[FORMFIELD] "

var (
	mu      sync.RWMutex
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("FORMFIELD_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// Enabled reports whether diagnostic logging is on.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetEnabled toggles diagnostic logging at runtime.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// SetOutput redirects diagnostics, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, prefix, 0)
}

// Log writes a printf-style message when logging is enabled.
func Log(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled || logger == nil {
		return
	}
	_ = logger.Output(2, fmt.Sprintf(format, args...))
}

// Logger is the minimal logging surface controllers accept.
type Logger interface {
	Logf(format string, args ...any)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(format string, args ...any)

// Logf implements Logger.
func (f LoggerFunc) Logf(format string, args ...any) {
	if f != nil {
		f(format, args...)
	}
}

// Default returns a Logger routed through Log.
func Default() Logger {
	return LoggerFunc(Log)
}

// Nop discards everything.
func Nop() Logger {
	return LoggerFunc(func(string, ...any) {})
}
