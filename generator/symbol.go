// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import "github.com/albertocavalcante/protoplug/importpath"

// Symbol is a named export of a generated file or of a package.
//
// A Symbol is a plain value. From holds the canonical import path of the
// exporting file (see package importpath), which is only turned into a
// specifier when the importing file is rendered, so symbols can be created
// for files that have not been generated yet.
type Symbol struct {
	// Name is the exported name.
	Name string

	// From is the canonical import path or package name.
	From string

	// TypeOnly marks symbols that are only used in type positions.
	TypeOnly bool

	// Runtime marks symbols provided by the runtime package.
	Runtime bool
}

// NewSymbol returns a value symbol exported by from.
func NewSymbol(name, from string) Symbol {
	return Symbol{Name: name, From: from}
}

// ToTypeOnly returns a copy of s used only in type positions.
func (s Symbol) ToTypeOnly() Symbol {
	s.TypeOnly = true
	return s
}

// Equal reports whether both symbols denote the same export.
func (s Symbol) Equal(o Symbol) bool {
	return s.key() == o.key()
}

// key identifies the export with the origin in canonical form, so that
// "./b_pb.js" and "./x/../b_pb.js" denote the same file.
func (s Symbol) key() symbolKey {
	return symbolKey{name: s.Name, from: importpath.Canonical(s.From)}
}

type symbolKey struct {
	name string
	from string
}
