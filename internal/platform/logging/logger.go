// Package logging initializes the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"

	"github.com/abhishekchotaliya/botmaster-twitter/internal/platform/correlation"
)

// InitLogger configures the default slog logger.
// level: "debug", "info", "warn", "error" (defaults to "info").
// format: "json" or "text" (defaults to "text").
// All records are routed through the correlation handler so request-scoped
// ids show up automatically.
func InitLogger(level, format string) {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(correlation.NewHandler(handler)))
}
