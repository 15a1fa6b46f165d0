package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var stderr io.Writer = os.Stderr

// New builds the application logger. With an empty file the logger writes
// text to stderr through slog; otherwise JSON records go to a rotating file
// so the terminal stays clean for the REPL.
//
// The returned close function flushes buffered output and is never nil.
func New(level, file string) (Logger, func() error, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	if file == "" {
		return NewTextLogger(stderr, lvl), func() error { return nil }, nil
	}

	zl := NewZapLogger(zap.New(newFileCore(file, zapLevel(lvl)), zap.AddCaller(), zap.AddCallerSkip(1)))
	return zl, zl.Sync, nil
}

// ParseLevel maps a case-insensitive level name to a slog level. An empty
// name is "info".
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func zapLevel(l slog.Level) zapcore.Level {
	switch {
	case l <= slog.LevelDebug:
		return zapcore.DebugLevel
	case l <= slog.LevelInfo:
		return zapcore.InfoLevel
	case l <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
