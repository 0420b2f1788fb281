package logger

import "github.com/user/frameview/pkg/ports"

// NoopLogger discards everything. The CLI uses it for --quiet and tests
// use it to keep the core silent.
type NoopLogger struct{}

// NewNoop returns a logger that discards all messages.
func NewNoop() NoopLogger {
	return NoopLogger{}
}

func (NoopLogger) Debug(string, ...interface{}) {}
func (NoopLogger) Info(string, ...interface{})  {}
func (NoopLogger) Warn(string, ...interface{})  {}
func (NoopLogger) Error(string, ...interface{}) {}

// WithComponent returns the receiver; there is no prefix to keep.
func (l NoopLogger) WithComponent(string) ports.Logger {
	return l
}

var _ ports.Logger = NoopLogger{}
