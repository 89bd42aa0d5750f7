package logging

import (
	"context"

	"github.com/ThiagoSantosOFC/starship/internal/ports"
)

// NopLogger discards everything. Useful as a default in tests.
type NopLogger struct{}

// NewNopLogger creates a NopLogger.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

// Debug discards the entry.
func (l *NopLogger) Debug(context.Context, string, ...ports.Field) {}

// Info discards the entry.
func (l *NopLogger) Info(context.Context, string, ...ports.Field) {}

// Warn discards the entry.
func (l *NopLogger) Warn(context.Context, string, ...ports.Field) {}

// Error discards the entry.
func (l *NopLogger) Error(context.Context, string, ...ports.Field) {}

// With returns the logger unchanged.
func (l *NopLogger) With(...ports.Field) ports.Logger { return l }

// SetLevel is a no-op.
func (l *NopLogger) SetLevel(ports.Level) {}

var _ ports.Logger = (*NopLogger)(nil)
