// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide zerolog logger.
//
// The TUI owns stdout and stderr, so interactive runs log to a file in the
// data directory instead. CLI commands log to stderr with a console writer.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileName is the log file created inside the data directory.
const LogFileName = "lumino.log"

// InitFile routes the global logger to a file under dir. Used by the TUI,
// which cannot share the terminal with log output. The returned file must
// be closed by the caller on shutdown.
func InitFile(dir string, debug bool) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	zerolog.SetGlobalLevel(level(debug))
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// InitConsole routes the global logger to stderr with human-readable output.
// Used by non-interactive CLI commands.
func InitConsole(debug bool) {
	zerolog.SetGlobalLevel(level(debug))
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()
}

// Discard silences the global logger. Used in tests.
func Discard() {
	log.Logger = zerolog.Nop()
}

func level(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
