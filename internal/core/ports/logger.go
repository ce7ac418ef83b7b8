package ports

import "io"

// Logger defines the interface for structured CLI logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs a verbose diagnostic message.
	Debug(msg string)

	// Info logs an informational message.
	Info(msg string)

	// Warn logs a warning.
	Warn(msg string)

	// Error logs an error. Structured errors may carry their own fields.
	Error(err error)

	// SetOutput redirects log output. A nil writer resets to stderr.
	SetOutput(w io.Writer)

	// SetJSON switches between JSON and pretty human-readable output.
	SetJSON(enable bool)
}
