// Package logging provides Logger implementations.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ThiagoSantosOFC/starship/internal/ports"
)

// ConsoleLogger writes structured log lines to a writer, text by default or
// JSON when configured.
type ConsoleLogger struct {
	mu         sync.Mutex
	out        io.Writer
	level      ports.Level
	fields     []ports.Field
	jsonFormat bool
	timestamps bool
}

// Option configures a ConsoleLogger.
type Option func(*ConsoleLogger)

// WithOutput sets the output writer (default os.Stderr).
func WithOutput(w io.Writer) Option {
	return func(l *ConsoleLogger) { l.out = w }
}

// WithLevel sets the minimum level (default Info).
func WithLevel(level ports.Level) Option {
	return func(l *ConsoleLogger) { l.level = level }
}

// WithJSONFormat switches output to one JSON object per line.
func WithJSONFormat(enabled bool) Option {
	return func(l *ConsoleLogger) { l.jsonFormat = enabled }
}

// WithTimestamps includes a timestamp in each entry.
func WithTimestamps(enabled bool) Option {
	return func(l *ConsoleLogger) { l.timestamps = enabled }
}

// NewConsoleLogger creates a ConsoleLogger.
func NewConsoleLogger(opts ...Option) *ConsoleLogger {
	l := &ConsoleLogger{
		out:        os.Stderr,
		level:      ports.LevelInfo,
		timestamps: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Debug logs at debug level.
func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelDebug, msg, fields)
}

// Info logs at info level.
func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelInfo, msg, fields)
}

// Warn logs at warn level.
func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelWarn, msg, fields)
}

// Error logs at error level.
func (l *ConsoleLogger) Error(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelError, msg, fields)
}

// With returns a logger carrying additional base fields.
func (l *ConsoleLogger) With(fields ...ports.Field) ports.Logger {
	merged := make([]ports.Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)

	return &ConsoleLogger{
		out:        l.out,
		level:      l.level,
		fields:     merged,
		jsonFormat: l.jsonFormat,
		timestamps: l.timestamps,
	}
}

// SetLevel sets the minimum level.
func (l *ConsoleLogger) SetLevel(level ports.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *ConsoleLogger) log(_ context.Context, level ports.Level, msg string, fields []ports.Field) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	all := make([]ports.Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)

	if l.jsonFormat {
		l.writeJSON(level, msg, all)
		return
	}
	l.writeText(level, msg, all)
}

func (l *ConsoleLogger) writeJSON(level ports.Level, msg string, fields []ports.Field) {
	entry := make(map[string]interface{}, len(fields)+3)
	if l.timestamps {
		entry["time"] = time.Now().UTC().Format(time.RFC3339)
	}
	entry["level"] = level.String()
	entry["msg"] = msg
	for _, f := range fields {
		entry[f.Key] = f.Value
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(l.out, string(data))
}

func (l *ConsoleLogger) writeText(level ports.Level, msg string, fields []ports.Field) {
	var prefix string
	if l.timestamps {
		prefix = time.Now().Format("15:04:05") + " "
	}
	line := fmt.Sprintf("%s[%s] %s", prefix, level.String(), msg)

	for _, f := range fields {
		line += fmt.Sprintf(" %s=%v", f.Key, f.Value)
	}

	_, _ = fmt.Fprintln(l.out, line)
}

var _ ports.Logger = (*ConsoleLogger)(nil)
