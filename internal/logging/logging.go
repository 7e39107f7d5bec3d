// Package logging configures the process-wide slog logger for hook
// invocations. Hooks run inside another tool's lifecycle, so logs go to
// a debug file under the data directory, never to the hook's stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup points slog's default logger at the given debug log file,
// appending. If the file cannot be opened the logger is discarded:
// a logging failure must never fail a hook.
func Setup(logPath string) {
	var w io.Writer = io.Discard

	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				w = f
			}
		}
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(handler))
}

// Logger returns the process-wide logger configured by Setup.
func Logger() *slog.Logger {
	return slog.Default()
}
