// Package utils holds small interfaces shared across packages.
package utils

// Logger is the minimal leveled logging interface used throughout bonsai.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NoopLogger discards everything. It is the default wherever a logger is
// optional.
type NoopLogger struct{}

func (NoopLogger) Debug(format string, args ...interface{}) {}
func (NoopLogger) Info(format string, args ...interface{})  {}
func (NoopLogger) Warn(format string, args ...interface{})  {}
func (NoopLogger) Error(format string, args ...interface{}) {}
