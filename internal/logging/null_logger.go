package logging

// NullLogger is a no-op logger that discards all events.
// Safe for concurrent use by multiple goroutines.
// Useful for testing and when logging is not desired.
type NullLogger struct{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

// Info is a no-op.
func (l *NullLogger) Info(_ string, _ ...any) {}

// Warn is a no-op.
func (l *NullLogger) Warn(_ string, _ ...any) {}

// Error is a no-op.
func (l *NullLogger) Error(_ string, _ ...any) {}
