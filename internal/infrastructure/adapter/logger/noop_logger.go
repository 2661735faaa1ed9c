package logger

import (
	"github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
)

// NoopLogger implements the Logger port but discards everything.
// Used in tests and when logging is disabled.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger
func NewNoopLogger() core.Logger {
	return &NoopLogger{}
}

// Debug discards the message
func (l *NoopLogger) Debug(message string, fields map[string]any) {}

// Info discards the message
func (l *NoopLogger) Info(message string, fields map[string]any) {}

// Warn discards the message
func (l *NoopLogger) Warn(message string, fields map[string]any) {}

// Error discards the message
func (l *NoopLogger) Error(message string, fields map[string]any) {}

// Flush does nothing
func (l *NoopLogger) Flush() error {
	return nil
}
