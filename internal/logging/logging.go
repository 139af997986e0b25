// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package logging builds the zap loggers of the plugin. Logs never go to
// stdout, which carries the CodeGeneratorResponse.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for structured logging.
const (
	FieldGenerator = "generator"
	FieldFile      = "file"
	FieldCount     = "count"
	FieldParameter = "parameter"
	FieldTarget    = "target"
	FieldDuration  = "duration"
)

// Options configure a logger.
type Options struct {
	// Verbose enables debug messages.
	Verbose bool

	// JSON selects the JSON encoder instead of the console encoder.
	JSON bool

	// Output is where logs are written. Defaults to stderr.
	Output io.Writer
}

// New returns a logger for opts.
func New(opts Options) *zap.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := zap.InfoLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(out), level)
	return zap.New(core).Named("protoplug")
}
