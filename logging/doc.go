// Package logging builds the structured loggers used by the loader and the CLI
// on top of Go's standard library log/slog. JSON output is the default; the
// CLI switches to the text handler for interactive use.
package logging
