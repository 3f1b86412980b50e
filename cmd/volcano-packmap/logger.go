// logger.go: charmbracelet/log adapter for the packmap Logger interface
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/volcanolabs/packmap"
)

// charmLogger adapts *log.Logger to the packmap.Logger interface.
type charmLogger struct {
	logger *log.Logger
}

func newCharmLogger(verbose bool) packmap.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return &charmLogger{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "packmap",
			Level:  level,
		}),
	}
}

func (c *charmLogger) Debug(msg string, args ...any) { c.logger.Debug(msg, args...) }
func (c *charmLogger) Info(msg string, args ...any)  { c.logger.Info(msg, args...) }
func (c *charmLogger) Warn(msg string, args ...any)  { c.logger.Warn(msg, args...) }
func (c *charmLogger) Error(msg string, args ...any) { c.logger.Error(msg, args...) }

func (c *charmLogger) With(args ...any) packmap.Logger {
	return &charmLogger{logger: c.logger.With(args...)}
}
