// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It discards everything until InitLogger runs.
// Only public data (paths, key types, networks, public keys) may be logged.
var Logger = zap.NewNop().Sugar()

// DebugEnvVar enables debug logging when set to any non-empty value.
const DebugEnvVar = "APKEY_DEBUG"

// InitLogger initializes the global logger with appropriate log level.
// Debug output is enabled by the debug argument or the APKEY_DEBUG environment variable.
func InitLogger(debug bool) {
	level := zapcore.InfoLevel
	if debug || os.Getenv(DebugEnvVar) != "" {
		level = zapcore.DebugLevel
	}

	// Timestamps and caller info are omitted for cleaner CLI output
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)

	Logger = zap.New(core).Sugar()
}

// Debug logs a debug message with alternating key/value pairs.
func Debug(msg string, keysAndValues ...any) {
	Logger.Debugw(msg, keysAndValues...)
}

// Warn logs a warning with alternating key/value pairs.
func Warn(msg string, keysAndValues ...any) {
	Logger.Warnw(msg, keysAndValues...)
}

// SyncLogger flushes buffered log entries. Errors from syncing a terminal are ignored.
func SyncLogger() {
	_ = Logger.Sync()
}
