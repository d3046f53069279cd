package bot

import (
	"context"
	"log/slog"
)

// ErrorReporter receives errors that occur while processing inbound events.
// Webhook responses to the provider are never affected by these errors, so
// reporting is the only place they surface.
type ErrorReporter interface {
	ReportError(ctx context.Context, err error)
}

// SlogReporter reports errors to the structured log.
type SlogReporter struct{}

func (SlogReporter) ReportError(ctx context.Context, err error) {
	slog.ErrorContext(ctx, "Inbound processing error", "error", err)
}
