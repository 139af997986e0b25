// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package plugin connects a generator to the protoc plugin protocol: a
// serialized CodeGeneratorRequest in, a CodeGeneratorResponse out.
package plugin

import (
	"context"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/albertocavalcante/protoplug/generator"
	"github.com/albertocavalcante/protoplug/internal/logging"
)

// Options configure a run.
type Options struct {
	// Generator produces the files.
	Generator generator.Generator

	// Info is printed in preambles. Defaults to "protoc-gen-<name>" and the
	// generator version.
	Info generator.PluginInfo

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (o Options) info() generator.PluginInfo {
	if o.Info.Name != "" {
		return o.Info
	}
	meta := o.Generator.Metadata()
	return generator.PluginInfo{Name: "protoc-gen-" + meta.Name, Version: meta.Version}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Run reads a request from r, runs the generator and writes the response
// to w. Problems with the request content are reported to protoc in the
// response; only I/O and decoding failures are returned.
func Run(ctx context.Context, opts Options, r io.Reader, w io.Writer) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read request")
	}
	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(in, req); err != nil {
		return errors.Wrap(err, "decode request")
	}

	resp := Generate(ctx, opts, req)

	out, err := proto.Marshal(resp)
	if err != nil {
		return errors.Wrap(err, "encode response")
	}
	if _, err := w.Write(out); err != nil {
		return errors.Wrap(err, "write response")
	}
	return nil
}

// Generate runs the generator on req. It never fails: errors are set on the
// returned response.
func Generate(ctx context.Context, opts Options, req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	log := opts.logger().With(zap.String(logging.FieldGenerator, opts.Generator.Metadata().Name))
	start := time.Now()

	files, err := generate(ctx, opts, req, log)
	if err != nil {
		log.Error("generation failed", zap.Error(err))
		return generator.ErrorResponse(err)
	}

	log.Debug("generation done",
		zap.Int(logging.FieldCount, len(files)),
		zap.Duration(logging.FieldDuration, time.Since(start)))
	return generator.ToResponse(files)
}

func generate(ctx context.Context, opts Options, req *pluginpb.CodeGeneratorRequest, log *zap.Logger) ([]generator.FileInfo, error) {
	meta := opts.Generator.Metadata()
	param, err := generator.ParseParameter(req.GetParameter(), meta.Options)
	if err != nil {
		return nil, err
	}
	targets := make([]string, len(param.Targets))
	for i, t := range param.Targets {
		targets[i] = string(t)
	}
	log.Debug("parameter",
		zap.String(logging.FieldParameter, param.Sanitized),
		zap.Strings(logging.FieldTarget, targets))

	s, err := generator.NewSchema(req, param, opts.info())
	if err != nil {
		return nil, err
	}
	for _, f := range s.Files {
		log.Debug("file to generate", zap.String(logging.FieldFile, f.ProtoName))
	}

	if err := s.Prepare(param.ImportStyle); err != nil {
		return nil, err
	}
	if err := opts.Generator.Generate(ctx, s); err != nil {
		return nil, err
	}
	return s.Finalize()
}
