// Package observability provides the structured logger and Prometheus
// metrics shared by the conversion pipeline and the CLI.
package observability

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds a slog text logger at the given level. Unknown level
// strings fall back to info.
func NewLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	return slog.New(handler)
}
