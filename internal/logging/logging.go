// Package logging provides logger construction for the analyzer.
//
// All packages log through the logr API. The backing implementation is zap,
// configured here. Verbosity follows the usual logr convention: higher V
// levels are chattier.
package logging

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels used throughout the module.
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// NewLogger returns a production logr.Logger backed by zap, showing messages
// up to the given verbosity level.
func NewLogger(level int) logr.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-level))
	zl, err := cfg.Build()
	if err != nil {
		// Build only fails on invalid config; fall back to a no-op logger
		// rather than propagating an error nobody can act on.
		return logr.Discard()
	}
	return zapr.NewLogger(zl)
}

// NewTestLogger returns a development-mode logger suitable for test suites.
func NewTestLogger() logr.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-TRACE))
	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(zl)
}
