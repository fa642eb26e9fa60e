// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger returns a text logger on stderr, or a JSON logger writing to
// a rotated file when path is set. The returned function flushes and
// closes the file.
func newLogger(path, level string) (*slog.Logger, func()) {
	lvl, err := parseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rlgldemo: %v, using info\n", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if path == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    16, // MB
		MaxBackups: 2,
	}
	return slog.New(slog.NewJSONHandler(w, opts)), func() { _ = w.Close() }
}

// parseLevel accepts the slog level names, case insensitive and with an
// optional offset such as "debug+2". Failures return LevelInfo.
func parseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", level)
	}
	return lvl, nil
}
