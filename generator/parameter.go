// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"slices"
	"strings"

	"github.com/albertocavalcante/protoplug/importpath"
)

// Target is a kind of output file.
type Target string

const (
	TargetTS  Target = "ts"
	TargetJS  Target = "js"
	TargetDTS Target = "dts"
)

// Suffix returns the file name suffix of the target: ".ts", ".js" or
// ".d.ts".
func (t Target) Suffix() string {
	if t == TargetDTS {
		return ".d.ts"
	}
	return "." + string(t)
}

// Parameter is the parsed plugin parameter.
type Parameter struct {
	// Targets are the requested outputs, in the order given.
	Targets []Target

	// ImportExtension is the extension policy for relative imports.
	ImportExtension importpath.Extension

	// ImportStyle is the module convention of .js files.
	ImportStyle importpath.Style

	// KeepEmptyFiles keeps files without content in the response.
	KeepEmptyFiles bool

	// TSNocheck adds "// @ts-nocheck" to preambles.
	TSNocheck bool

	// BootstrapWKT imports well-known types from generated files instead of
	// the runtime package.
	BootstrapWKT bool

	// RewriteImports are the import rewrite rules, first match wins.
	RewriteImports []importpath.Rule

	// Options holds generator-specific keys.
	Options map[string]string

	// Sanitized is the parameter as it appears in preambles.
	Sanitized string
}

// DefaultParameter returns the parameter used for an empty string.
func DefaultParameter() Parameter {
	return Parameter{
		Targets:         []Target{TargetJS, TargetDTS},
		ImportExtension: importpath.ExtensionJS,
		ImportStyle:     importpath.StyleModule,
		TSNocheck:       true,
		Options:         map[string]string{},
	}
}

// ParseParameter parses a comma separated list of key=value pairs. Keys
// listed in known are generator options and are stored in Options; any
// other unrecognized key is an error.
func ParseParameter(raw string, known []string) (Parameter, error) {
	p := DefaultParameter()
	var sanitized []string

	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, value, _ := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		sanitized = append(sanitized, item)

		var err error
		switch key {
		case "target":
			p.Targets, err = parseTargets(value)
		case "import_extension":
			p.ImportExtension, err = parseExtension(value)
		case "js_import_style":
			switch importpath.Style(value) {
			case importpath.StyleModule, importpath.StyleLegacyCommonJS:
				p.ImportStyle = importpath.Style(value)
			default:
				err = &ParameterError{Key: key, Value: value, Reason: `want "module" or "legacy_commonjs"`}
			}
		case "keep_empty_files":
			p.KeepEmptyFiles, err = parseBool(key, value)
		case "ts_nocheck":
			p.TSNocheck, err = parseBool(key, value)
		case "bootstrap_wkt":
			p.BootstrapWKT, err = parseBool(key, value)
		case "rewrite_imports":
			var r importpath.Rule
			r, err = importpath.ParseRule(value)
			if err != nil {
				err = &ParameterError{Key: key, Value: value, Reason: err.Error()}
				break
			}
			p.RewriteImports = append(p.RewriteImports, r)
		default:
			if !slices.Contains(known, key) {
				err = &ParameterError{Key: key, Value: value, Reason: "unknown option"}
				break
			}
			p.Options[key] = value
		}
		if err != nil {
			return Parameter{}, err
		}
	}

	p.Sanitized = strings.Join(sanitized, ",")
	return p, nil
}

// Option returns a generator option value or def if it is not set.
func (p Parameter) Option(key, def string) string {
	if v, ok := p.Options[key]; ok && v != "" {
		return v
	}
	return def
}

// HasTarget reports whether t was requested.
func (p Parameter) HasTarget(t Target) bool {
	return slices.Contains(p.Targets, t)
}

// ImportOptions returns the import path options for a run in the given
// style.
func (p Parameter) ImportOptions(style importpath.Style) importpath.Options {
	return importpath.Options{
		Style:     style,
		Rules:     p.RewriteImports,
		Extension: p.ImportExtension,
	}
}

func parseTargets(value string) ([]Target, error) {
	var targets []Target
	for _, s := range strings.Split(value, "+") {
		t := Target(strings.TrimSpace(s))
		switch t {
		case TargetTS, TargetJS, TargetDTS:
		default:
			return nil, &ParameterError{Key: "target", Value: value, Reason: `want "ts", "js" or "dts" joined with "+"`}
		}
		if !slices.Contains(targets, t) {
			targets = append(targets, t)
		}
	}
	return targets, nil
}

func parseExtension(value string) (importpath.Extension, error) {
	switch importpath.Extension(value) {
	case importpath.ExtensionNone, importpath.ExtensionJS, importpath.ExtensionTS:
		return importpath.Extension(value), nil
	}
	return "", &ParameterError{Key: "import_extension", Value: value, Reason: `want "none", ".js" or ".ts"`}
}

func parseBool(key, value string) (bool, error) {
	switch value {
	case "", "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, &ParameterError{Key: key, Value: value, Reason: "want a boolean"}
}
