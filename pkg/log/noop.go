package log

// NoopLogger discards all log messages. Use it when embedding the library
// without any logging output, or in tests.
type NoopLogger struct{}

// NewNoopLogger creates a logger that discards everything.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// Debug discards the message.
func (*NoopLogger) Debug(msg string, fields ...Field) {}

// Info discards the message.
func (*NoopLogger) Info(msg string, fields ...Field) {}

// Warn discards the message.
func (*NoopLogger) Warn(msg string, fields ...Field) {}

// Error discards the message.
func (*NoopLogger) Error(msg string, fields ...Field) {}
