// Package logging builds the process-wide structured logger on top of
// log/slog: level and format parsing from configuration, and helpers for
// carrying a logger through a context.Context.
package logging
