// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config loads the YAML file of the generate command, which runs a
// generator outside of protoc on a serialized FileDescriptorSet.
//
// Example:
//
//	generator: es
//	input: descriptors.binpb
//	out: gen
//	files: [a.proto]
//	parameter:
//	  target: [ts]
//	  import_extension: none
//	  rewrite_imports:
//	    - pattern: ./google/**
//	      target: "@acme/wkt"
//	options:
//	  registry_name: types
package config

import (
	"bytes"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/protoplug/importpath"
)

// DefaultGenerator is used when the config names none.
const DefaultGenerator = "es"

// Config is the content of a config file.
type Config struct {
	// Generator is the registered generator name.
	Generator string `yaml:"generator,omitempty"`

	// Input is the path of a binary FileDescriptorSet, as written by
	// "protoc --descriptor_set_out --include_imports".
	Input string `yaml:"input"`

	// Out is the output directory. Defaults to the current directory.
	Out string `yaml:"out,omitempty"`

	// Files are the files to generate. Defaults to every file of the set.
	Files []string `yaml:"files,omitempty"`

	Parameter Parameter `yaml:"parameter,omitempty"`

	// Options are generator specific options.
	Options map[string]string `yaml:"options,omitempty"`
}

// Parameter mirrors the plugin parameter keys.
type Parameter struct {
	Target          []string      `yaml:"target,omitempty"`
	ImportExtension string        `yaml:"import_extension,omitempty"`
	JSImportStyle   string        `yaml:"js_import_style,omitempty"`
	KeepEmptyFiles  *bool         `yaml:"keep_empty_files,omitempty"`
	TSNocheck       *bool         `yaml:"ts_nocheck,omitempty"`
	BootstrapWKT    *bool         `yaml:"bootstrap_wkt,omitempty"`
	RewriteImports  []RewriteRule `yaml:"rewrite_imports,omitempty"`
}

// RewriteRule is one rewrite_imports entry.
type RewriteRule struct {
	Pattern string `yaml:"pattern"`
	Target  string `yaml:"target"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes a config. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode")
	}
	if cfg.Generator == "" {
		cfg.Generator = DefaultGenerator
	}
	if cfg.Out == "" {
		cfg.Out = "."
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that can be checked without a generator.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.WithHint(errors.New("input is required"), "set input to a FileDescriptorSet written by protoc --descriptor_set_out")
	}
	for i, r := range c.Parameter.RewriteImports {
		rule := importpath.Rule{Pattern: r.Pattern, Target: r.Target}
		if err := rule.Validate(); err != nil {
			return errors.Wrapf(err, "rewrite_imports[%d]", i)
		}
	}
	for k := range c.Options {
		if strings.ContainsAny(k, ",=") {
			return errors.Newf("option key %q must not contain ',' or '='", k)
		}
	}
	return nil
}

// PluginParameter returns the config as a protoc plugin parameter string.
// Keys appear in a fixed order and options are sorted by key.
func (c *Config) PluginParameter() string {
	var parts []string
	add := func(k, v string) { parts = append(parts, k+"="+v) }
	addBool := func(k string, v *bool) {
		if v != nil {
			add(k, strconv.FormatBool(*v))
		}
	}

	p := c.Parameter
	if len(p.Target) > 0 {
		add("target", strings.Join(p.Target, "+"))
	}
	if p.ImportExtension != "" {
		add("import_extension", p.ImportExtension)
	}
	if p.JSImportStyle != "" {
		add("js_import_style", p.JSImportStyle)
	}
	addBool("keep_empty_files", p.KeepEmptyFiles)
	addBool("ts_nocheck", p.TSNocheck)
	addBool("bootstrap_wkt", p.BootstrapWKT)
	for _, r := range p.RewriteImports {
		add("rewrite_imports", r.Pattern+":"+r.Target)
	}
	for _, k := range slices.Sorted(maps.Keys(c.Options)) {
		add(k, c.Options[k])
	}
	return strings.Join(parts, ",")
}
