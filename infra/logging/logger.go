// Package logging builds the zap logger shared by every component.
// The teacher repo used bare stdlib log.Printf; other matching-engine
// code in the retrieval pack (other_examples/Aidin1998-finalex__engine.go)
// reaches for zap directly, which is the idiom this build follows for
// its ambient logging stack (see SPEC_FULL.md §2).
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-style zap logger at the given level
// ("debug", "info", "warn", or "error"; defaults to "info").
func New(level string) (*zap.Logger, error) {
	var zl zapcore.Level
	switch level {
	case "", "info":
		zl = zapcore.InfoLevel
	case "debug":
		zl = zapcore.DebugLevel
	case "warn":
		zl = zapcore.WarnLevel
	case "error":
		zl = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("logging: unknown level %q", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zl)
	cfg.EncoderConfig.TimeKey = "ts"
	return cfg.Build()
}
