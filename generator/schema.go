// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/albertocavalcante/protoplug/importpath"
	"github.com/albertocavalcante/protoplug/model"
)

// State is the lifecycle state of a Schema.
type State int

const (
	// StateCollecting is the initial state. No file may be generated yet.
	StateCollecting State = iota

	// StatePrepared means the import style is fixed and files may be
	// generated.
	StatePrepared

	// StateFinalized means all files were rendered.
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StatePrepared:
		return "prepared"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// PluginInfo identifies the plugin in preambles.
type PluginInfo struct {
	Name    string
	Version string
}

// Schema describes the files a generator is asked to generate and owns the
// files it generates.
//
// A Schema is used by one run on one goroutine:
//
//	s, err := NewSchema(req, param, info)
//	err = s.Prepare(param.ImportStyle)
//	f, err := s.GenerateFile("foo_pb.ts")
//	// f.Print(...)
//	files, err := s.Finalize()
type Schema struct {
	// Files are the files to generate, in descriptor set order.
	Files []*model.File

	// AllFiles are all files of the request.
	AllFiles []*model.File

	// Targets are the requested outputs.
	Targets []Target

	// Runtime provides symbols of the runtime package.
	Runtime RuntimeImports

	// Request is the original request.
	Request *pluginpb.CodeGeneratorRequest

	// Parameter is the parsed plugin parameter.
	Parameter Parameter

	set    *model.Set
	banner banner
	state  State
	opts   importpath.Options
	files  []*GeneratedFile
	names  map[string]bool
}

// NewSchema builds the descriptor view of req and selects the files to
// generate. It fails with a [*MissingFileError] if a requested file is not
// part of the request.
func NewSchema(req *pluginpb.CodeGeneratorRequest, param Parameter, info PluginInfo) (*Schema, error) {
	set, err := model.NewSet(req.GetProtoFile())
	if err != nil {
		return nil, err
	}
	files, err := selectFiles(set, req.GetFileToGenerate())
	if err != nil {
		return nil, err
	}
	return &Schema{
		Files:     files,
		AllFiles:  set.Files,
		Targets:   param.Targets,
		Runtime:   newRuntimeImports(),
		Request:   req,
		Parameter: param,
		set:       set,
		banner: banner{
			info:      info,
			parameter: param.Sanitized,
			tsNocheck: param.TSNocheck,
		},
		names: make(map[string]bool),
	}, nil
}

// State returns the lifecycle state.
func (s *Schema) State() State { return s.state }

// ImportStyle returns the style fixed by Prepare.
func (s *Schema) ImportStyle() importpath.Style { return s.opts.Style }

// Set returns the descriptor view of the request.
func (s *Schema) Set() *model.Set { return s.set }

// Prepare fixes the import style for the run. It must be called exactly
// once, before the first GenerateFile.
func (s *Schema) Prepare(style importpath.Style) error {
	if s.state != StateCollecting {
		return &OrderingError{Op: "Prepare", State: s.state}
	}
	switch style {
	case importpath.StyleModule, importpath.StyleLegacyCommonJS:
	default:
		return &ParameterError{Key: "js_import_style", Value: string(style), Reason: `want "module" or "legacy_commonjs"`}
	}
	s.opts = s.Parameter.ImportOptions(style)
	s.state = StatePrepared
	return nil
}

// GenerateFile creates a file. Names are unique within a run.
func (s *Schema) GenerateFile(name string) (*GeneratedFile, error) {
	if s.state != StatePrepared {
		return nil, &OrderingError{Op: "GenerateFile", State: s.state}
	}
	if s.names[name] {
		return nil, &DuplicateFileNameError{Name: name}
	}
	s.names[name] = true
	f := newGeneratedFile(name, s.opts, s.TypeSymbol, s.banner.forFile)
	s.files = append(s.files, f)
	return f, nil
}

// TypeSymbol returns the symbol of a message or enum. The symbol refers to
// the file generated for the type's proto file, or to the runtime package
// for well-known types.
func (s *Schema) TypeSymbol(t model.Type) Symbol {
	from := importpath.ForFile(t.DeclFile(), s.Parameter.BootstrapWKT, s.Files)
	return Symbol{
		Name:    t.LocalName(),
		From:    from,
		Runtime: from == importpath.RuntimePackage,
	}
}

// Finalize renders all files in creation order. Files without content are
// dropped unless the keep_empty_files option is set. The first failure
// aborts the run and no file is returned.
func (s *Schema) Finalize() ([]FileInfo, error) {
	if s.state != StatePrepared {
		return nil, &OrderingError{Op: "Finalize", State: s.state}
	}
	s.state = StateFinalized

	var out []FileInfo
	for _, f := range s.files {
		fi, err := f.Render()
		if err != nil {
			return nil, errors.Wrapf(err, "render %s", f.Name())
		}
		if fi.Content == "" && !s.Parameter.KeepEmptyFiles {
			continue
		}
		out = append(out, fi)
	}
	return out, nil
}
