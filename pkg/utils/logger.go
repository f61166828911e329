package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a zap logger. Debug selects the development config (console
// encoding, debug level, stack traces on warnings); otherwise the production config
// (JSON, info level, no stack traces). Both use ISO 8601 timestamps.
func NewLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg.DisableStacktrace = true
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// MustLogger is NewLogger with a no-op logger fallback.
func MustLogger(debug bool) *zap.Logger {
	l, err := NewLogger(debug)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
