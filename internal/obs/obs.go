// Package obs wires up the structured logger shared by cmd/vtdemo and the
// PTY session loop.
package obs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger's verbosity and encoding.
type Config struct {
	// Debug enables debug-level logging and a development-style encoder.
	Debug bool
	// JSON forces JSON encoding even outside Debug mode. Useful when vtdemo's
	// stdout is reserved for the child PTY and logs must go to a file instead.
	JSON bool
}

// New builds a zap.Logger per cfg. Debug builds use the console encoder for
// readability at a terminal; non-debug builds default to JSON so logs stay
// machine-parseable when redirected to a file alongside the PTY session.
func New(cfg Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Debug {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.JSON {
		zcfg.Encoding = "json"
	}
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}

// Noop returns a logger that discards everything, used by tests and library
// callers that never configured logging.
func Noop() *zap.Logger {
	return zap.NewNop()
}

// NewWithSink builds a logger per cfg that writes to sink instead of the
// default stdout/stderr, for hosts like vtdemo whose stdout is reserved for
// a child PTY's own output.
func NewWithSink(cfg Config, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if cfg.Debug {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	enc := zapcore.NewJSONEncoder(encCfg)
	if cfg.Debug && !cfg.JSON {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, sink, level)
	return zap.New(core), nil
}
