package bootloader

// Logger is an optional logging interface that can be provided to the session.
// This allows integration with any logging framework.
//
// Example with log/slog:
//
//	type SlogLogger struct{ L *slog.Logger }
//	func (l SlogLogger) Debug(msg string, kv ...interface{}) { l.L.Debug(msg, kv...) }
//	func (l SlogLogger) Info(msg string, kv ...interface{})  { l.L.Info(msg, kv...) }
//	func (l SlogLogger) Error(msg string, kv ...interface{}) { l.L.Error(msg, kv...) }
//
//	sess, err := bootloader.Open(ctx, dev, bootloader.WithLogger(SlogLogger{L: slog.Default()}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
