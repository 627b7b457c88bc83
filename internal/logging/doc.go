// Package logging configures structured logging for weft on top of log/slog.
//
// It provides console and JSON handlers, a fanout for writing to several
// sinks at once, attribute helpers shared across components, context
// carriage for batch run identifiers, and a bounded in-memory ring sink used
// to surface recent diagnostics after a batch run.
package logging
