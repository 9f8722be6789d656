// Package logging holds the process-wide zap loggers. The TUI owns the
// terminal, so log output goes to a file under the data directory.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Log is the structured logger. SLog is its sugared form for printf-style
// call sites. Both default to no-ops until Init runs, so tests and early
// startup paths can log freely.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// Init routes log output to the given file path.
func Init(path string) error {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("logging.Init: %w", err)
	}
	Log = logger
	SLog = logger.Sugar()
	return nil
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	_ = Log.Sync() //nolint:errcheck // sync failure on a closing file is harmless
}
