package briza

// Logger provides a pluggable structured logging interface.
// Events are short snake_case names; fields are alternating key/value pairs
// in the style of log/slog. Implementations must be fire-and-forget: they
// never block indefinitely and never abort the caller, and must be safe for
// concurrent use by multiple goroutines.
type Logger interface {
	// Info logs informational events about normal operations.
	Info(event string, fields ...any)

	// Warn logs recoverable anomalies (degraded checks, empty directories).
	Warn(event string, fields ...any)

	// Error logs failures.
	Error(event string, fields ...any)
}
