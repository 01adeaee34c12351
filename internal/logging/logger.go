// Package logging provides the shared structured logger for mdvet.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // One process-wide logger by design.
var (
	shared *log.Logger
	once   sync.Once
)

// Default returns the process-wide logger, created on first use. It writes
// plain structured lines to stderr at info level; diagnostics themselves go
// to stdout through the UI layer, never through this logger.
func Default() *log.Logger {
	once.Do(func() {
		shared = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: false,
			ReportCaller:    false,
			Level:           log.InfoLevel,
		})
	})
	return shared
}

// SetLevel adjusts the shared logger's verbosity by name ("debug", "info",
// "warn", "error"). An unknown name is ignored: a mistyped flag value must
// never silence warnings.
func SetLevel(name string) {
	level, err := log.ParseLevel(strings.ToLower(name))
	if err != nil {
		Default().Warn("unknown log level, keeping current", "level", name)
		return
	}
	Default().SetLevel(level)
}
