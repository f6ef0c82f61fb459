// Package logging wires slog up for waymark. While the TUI owns the
// terminal, log output must go to a file; the console handler is only
// used when no file is available.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Manager owns the configured slog logger.
type Manager struct {
	logger *slog.Logger
}

// NewManager creates an unconfigured Manager; Logger falls back to
// slog.Default until Setup runs.
func NewManager() *Manager {
	return &Manager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes logging. With a non-nil file all output goes
// there; otherwise it goes to stderr, which keeps stdout clean for the
// TUI. state, if non-nil, contributes live session attributes to
// every record.
func (m *Manager) Setup(file io.Writer, level string, state SessionState) {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	out := io.Writer(os.Stderr)
	if file != nil {
		out = file
	}
	sink := newTee(slog.NewTextHandler(out, handlerOpts))

	m.logger = slog.New(withSessionState(sink, state))
	m.logger.Info("Logging initialized", "level", level)
}

// Logger returns the configured slog.Logger.
func (m *Manager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}
