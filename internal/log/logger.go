// Package log provides the zap-backed implementation of domain.Logger used
// by the herald binary, plus a no-op logger for tests and embedders that
// bring their own logging.
package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/herald-tools/herald/internal/domain"
)

// Logger adapts a zap logger to the domain.Logger interface.
type Logger struct {
	s *zap.SugaredLogger
}

// New builds a logger writing structured lines to stderr at the given
// level. Level values: "debug", "info", "warn", "error"; anything else
// defaults to warn.
func New(level string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{s: z.Sugar()}, nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func (l *Logger) Debug(format string, args ...any) { l.s.Debugf(format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.s.Infof(format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.s.Warnf(format, args...) }
func (l *Logger) Error(format string, args ...any) { l.s.Errorf(format, args...) }

// Close flushes buffered entries.
func (l *Logger) Close() error {
	return l.s.Sync()
}

// Nop is a logger that discards all messages.
type Nop struct{}

func (Nop) Debug(_ string, _ ...any) {}
func (Nop) Info(_ string, _ ...any)  {}
func (Nop) Warn(_ string, _ ...any)  {}
func (Nop) Error(_ string, _ ...any) {}
func (Nop) Close() error             { return nil }

// Verify both implement domain.Logger.
var _ domain.Logger = (*Logger)(nil)
var _ domain.Logger = Nop{}
