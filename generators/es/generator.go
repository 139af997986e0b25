// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package es generates protobuf-es style TypeScript and JavaScript:
// enums and message classes backed by the @bufbuild/protobuf runtime.
package es

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/albertocavalcante/protoplug/generator"
	"github.com/albertocavalcante/protoplug/model"
)

// Generator implements [generator.Generator] for message and enum code.
type Generator struct{}

// New creates a new es generator.
func New() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "es",
		Version:        "v1.0.0",
		Description:    "Generate protobuf-es style TypeScript and JavaScript",
		FileExtensions: []string{".ts", ".js", ".d.ts"},
		URL:            "https://github.com/albertocavalcante/protoplug",
	}
}

// Generate writes one file per target for every file to generate. Files are
// created target by target, so all TypeScript files come first.
func (g *Generator) Generate(ctx context.Context, s *generator.Schema) error {
	for _, target := range s.Targets {
		for _, file := range s.Files {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := generate(s, file, target); err != nil {
				return errors.Wrapf(err, "generate %s for %s", target, file.ProtoName)
			}
		}
	}
	return nil
}

func generate(s *generator.Schema, file *model.File, target generator.Target) error {
	switch target {
	case generator.TargetTS:
		return generateTS(s, file)
	case generator.TargetJS:
		return generateJS(s, file, s.ImportStyle())
	case generator.TargetDTS:
		return generateDTS(s, file)
	default:
		return errors.Newf("unsupported target %q", target)
	}
}
