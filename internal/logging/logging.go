// Package logging provides leveled printf-style logging for the memory
// subsystem, backed by zap.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = newLogger(zapcore.InfoLevel)
)

func newLogger(level zapcore.Level) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// SetVerbose switches the global level between info and debug.
func SetVerbose(verbose bool) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	mu.Lock()
	logger = newLogger(level)
	mu.Unlock()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) { get().Debugf(format, args...) }

// Infof logs a formatted info message.
func Infof(format string, args ...any) { get().Infof(format, args...) }

// Warnf logs a formatted warning. Soft failures in classification and
// routing land here; they must never surface to the conversation.
func Warnf(format string, args ...any) { get().Warnf(format, args...) }

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) { get().Errorf(format, args...) }
