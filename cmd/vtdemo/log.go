package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-vt100/termcore/internal/obs"
)

// newFileLogger builds vtdemo's logger against sink, since stdout is
// reserved for the child PTY's own output.
func newFileLogger(debug bool, sink *os.File) (*zap.Logger, error) {
	return obs.NewWithSink(obs.Config{Debug: debug}, zapcore.AddSync(sink))
}
