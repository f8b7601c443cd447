// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures zerolog for mindeep.
//
// The terminal belongs to the UI, so log output always goes to a file. With
// no file configured the logger is disabled.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects the log destination and verbosity.
type Options struct {
	// Level is a zerolog level name (trace, debug, info, warn, error, disabled)
	Level string

	// Path is the log file; empty disables logging
	Path string

	// Debug forces debug level regardless of Level
	Debug bool
}

// ParseLevel maps a level name to a zerolog level. Unknown names map to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Setup builds the logger described by opts, installs it as the global
// zerolog logger and returns it with a closer for the underlying file.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	if opts.Path == "" || level == zerolog.Disabled {
		logger := zerolog.Nop()
		log.Logger = logger
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0700); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}

	logger := New(f, level)
	log.Logger = logger
	return logger, f, nil
}

// New builds a JSON logger on w with build metadata attached.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if info, ok := debug.ReadBuildInfo(); ok {
		ctx = ctx.Str("go_version", info.GoVersion)
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				ctx = ctx.Str("git_revision", s.Value)
				break
			}
		}
	}
	return ctx.Logger()
}

// Component returns a child of the global logger tagged with component.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
