// Package logger provides the structured logging surface shared by all
// components. Production code gets a zap-backed implementation; library
// code that is handed no logger falls back to Nop.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the leveled, structured logging interface used throughout.
// Key/value pairs follow the zap sugared convention.
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

// Nop discards all log output.
type Nop struct{}

func (Nop) Debugw(string, ...any) {}
func (Nop) Infow(string, ...any)  {}
func (Nop) Warnw(string, ...any)  {}
func (Nop) Errorw(string, ...any) {}

// New builds a zap-backed Logger writing human-readable output to
// stderr at the given level ("debug", "info", "warn", "error").
func New(level string) (Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return z.Sugar(), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// Ensure returns log unchanged, or Nop when log is nil.
func Ensure(log Logger) Logger {
	if log == nil {
		return Nop{}
	}
	return log
}
