// Package log provides a logging abstraction for oraclient components.
//
// The Logger interface can be implemented by any logging library. A zerolog
// adapter and a no-op logger for tests are provided.
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//
// Implement the Logger interface to route client logs into an existing
// logging setup:
//
//	type MyLogger struct { ... }
//
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
package log
