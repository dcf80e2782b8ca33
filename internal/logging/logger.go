// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zap logger used across authflow.
//
// The TUI owns the terminal, so logs go to a file by default
// (~/.authflow/authflow.log). Line-mode commands may log to stderr instead.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how the logger is built.
type Options struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string
	// Path is the output file. "stderr" and "stdout" are accepted too.
	// Empty disables logging entirely.
	Path string
	// Console switches from JSON to the human readable console encoder.
	Console bool
}

// New builds a logger from opts. The caller owns the returned logger and
// should Sync it before exit.
func New(opts Options) (*zap.Logger, error) {
	if opts.Path == "" {
		return zap.NewNop(), nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	if opts.Path != "stderr" && opts.Path != "stdout" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0700); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	prodConfig := zap.NewProductionConfig()
	prodConfig.Level = zap.NewAtomicLevelAt(level)
	prodConfig.OutputPaths = []string{opts.Path}
	prodConfig.ErrorOutputPaths = []string{opts.Path}
	prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	prodConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	if opts.Console {
		prodConfig.Encoding = "console"
	}

	logger, err := prodConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
