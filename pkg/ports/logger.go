// Package ports defines interfaces for the collaborators of the playback core.
package ports

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug covers per-frame work inside the core: cache misses,
	// advances, skipped renders.
	LevelDebug LogLevel = iota
	// LevelInfo covers session milestones reported by the CLI host.
	LevelInfo
	// LevelWarn reports problems playback survives, such as a failed
	// debug snapshot.
	LevelWarn
	// LevelError reports failures that end the session.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a string into a LogLevel.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger is the leveled, translatable logger shared by the core and hosts.
type Logger interface {
	// Debug logs a debug message. msg is a translation key and a format
	// string for args.
	Debug(msg string, args ...interface{})

	// Info logs an informational message.
	Info(msg string, args ...interface{})

	// Warn logs a warning message.
	Warn(msg string, args ...interface{})

	// Error logs an error message.
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with the
	// component name ("load", "resize", "playback", "viewer").
	WithComponent(component string) Logger
}
