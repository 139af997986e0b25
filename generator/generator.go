// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package generator is a framework for protoc plugins that generate
// ECMAScript.
//
// A [Schema] wraps one CodeGeneratorRequest. Generators create
// [GeneratedFile] values through it, print code into them and refer to
// types of other files with a [Symbol]. Imports are computed when the
// schema is finalized, so a generator never deals with module paths.
package generator

import (
	"context"
)

// Generator is the interface that all code generators must implement.
type Generator interface {
	// Metadata returns information about this generator.
	Metadata() Metadata

	// Generate creates files through the schema. The schema is prepared.
	Generate(ctx context.Context, s *Schema) error
}

// Metadata describes a generator.
type Metadata struct {
	// Name is the short identifier (e.g., "es", "registry").
	Name string

	// Version is the generator version, printed in preambles.
	Version string

	// Description is a human-readable description.
	Description string

	// FileExtensions lists typical output extensions (e.g., [".ts", ".js"]).
	FileExtensions []string

	// Options are the generator-specific parameter keys it accepts.
	Options []string

	// URL is the homepage/documentation URL (optional).
	URL string
}
