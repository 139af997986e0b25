// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package registry generates a type registry module that imports every
// message of the files to generate from their _pb files and registers
// them with createRegistry.
package registry

import (
	"context"
	"path"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/albertocavalcante/protoplug/generator"
	"github.com/albertocavalcante/protoplug/importpath"
	"github.com/albertocavalcante/protoplug/model"
)

// OptionName sets the file base name and the exported constant. It may
// contain a directory, e.g. "gen/types".
const OptionName = "registry_name"

const defaultName = "registry"

// Generator implements [generator.Generator] for registry modules.
type Generator struct{}

// New creates a new registry generator.
func New() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "registry",
		Version:        "v1.0.0",
		Description:    "Generate a message type registry for the generated files",
		FileExtensions: []string{".ts", ".js", ".d.ts"},
		Options:        []string{OptionName},
		URL:            "https://github.com/albertocavalcante/protoplug",
	}
}

// Generate writes one registry file per target.
func (g *Generator) Generate(ctx context.Context, s *generator.Schema) error {
	name := s.Parameter.Option(OptionName, defaultName)
	if name != path.Clean(name) || path.IsAbs(name) || strings.HasPrefix(name, "../") {
		return &generator.ParameterError{Key: OptionName, Value: name, Reason: "want a clean relative path"}
	}

	var messages []*model.Message
	for _, file := range s.Files {
		messages = append(messages, file.AllMessages()...)
	}

	for _, target := range s.Targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := generate(s, name, target, messages); err != nil {
			return errors.Wrapf(err, "generate %s registry", target)
		}
	}
	return nil
}

func generate(s *generator.Schema, name string, target generator.Target, messages []*model.Message) error {
	f, err := s.GenerateFile(name + "_pb" + target.Suffix())
	if err != nil {
		return err
	}
	w := &writer{f: f}
	export := f.Export(path.Base(name))

	w.print("/**")
	w.print(" * Registry of the message types generated from ", protoNames(s.Files), ".")
	w.print(" */")
	switch target {
	case generator.TargetDTS:
		w.print("export declare const ", export, ": ", s.Runtime.IMessageTypeRegistry, ";")
		return w.err
	case generator.TargetTS:
		w.print("export const ", export, ": ", s.Runtime.IMessageTypeRegistry, " = ", s.Runtime.CreateRegistry, "(")
	default:
		if s.ImportStyle() == importpath.StyleLegacyCommonJS {
			w.print("const ", export, " = ", s.Runtime.CreateRegistry, "(")
		} else {
			w.print("export const ", export, " = ", s.Runtime.CreateRegistry, "(")
		}
	}
	for _, m := range messages {
		w.print("  ", m, ",")
	}
	w.print(");")
	if target == generator.TargetJS && s.ImportStyle() == importpath.StyleLegacyCommonJS {
		w.print()
		w.print("exports.", export, " = ", export, ";")
	}
	return w.err
}

func protoNames(files []*model.File) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.ProtoName
	}
	return strings.Join(names, ", ")
}

// writer keeps the first print error.
type writer struct {
	f   *generator.GeneratedFile
	err error
}

func (w *writer) print(args ...any) {
	if w.err == nil {
		w.err = w.f.Print(args...)
	}
}
