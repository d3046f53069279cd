// Package bot defines the provider-agnostic message contract.
//
// These are the shapes the host bot framework speaks: normalized incoming
// and outgoing messages plus the narrow interfaces (Handler, ErrorReporter)
// the framework implements to receive them. No implementation code beyond
// the default slog-backed reporter.
package bot
