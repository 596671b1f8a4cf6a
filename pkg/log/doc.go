// Package log is the logging abstraction shared by shiprelay components.
//
// Components depend on the [Logger] interface only. The CLI wires a
// [ZerologAdapter]; tests and library users who do not care about output
// can pass a [NoopLogger].
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger.Info("cycle complete", log.String("cycle_id", id), log.Int("drained", n))
//
// Any other logging library can be plugged in by implementing the four
// level methods:
//
//	type MyLogger struct { ... }
//
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
package log
