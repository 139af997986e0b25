// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package importpath maps generated files to module specifiers.
//
// Every generated file has a canonical import path: a root-relative,
// "./"-anchored path with a ".js" extension, e.g. "./foo/bar_pb.js". Symbols
// record the canonical path of the file that exports them. When a file is
// rendered, each canonical path is rewritten by the user's rules, given the
// configured extension, and made relative to the importing file.
//
// All functions are pure.
package importpath

import (
	"path"
	"strings"

	"github.com/albertocavalcante/protoplug/model"
)

// RuntimePackage is the module that provides the protobuf runtime and the
// well-known types.
const RuntimePackage = "@bufbuild/protobuf"

// Style is the module system generated files conform to.
type Style string

const (
	// StyleModule emits ECMAScript import declarations.
	StyleModule Style = "module"

	// StyleLegacyCommonJS emits require() calls. Relative specifiers never
	// carry an extension.
	StyleLegacyCommonJS Style = "legacy_commonjs"
)

// Extension is the extension policy for relative specifiers.
type Extension string

const (
	ExtensionJS   Extension = ".js"
	ExtensionTS   Extension = ".ts"
	ExtensionNone Extension = "none"
)

var generatedExtensions = []string{".d.ts", ".ts", ".js"}

// IsRelative reports whether p is a relative specifier ("./x" or "../x").
func IsRelative(p string) bool {
	return strings.HasPrefix(p, "./") || strings.HasPrefix(p, "../")
}

// Derive returns the canonical import path of a generated file name:
// "foo/bar_pb.ts" becomes "./foo/bar_pb.js".
func Derive(fileName string) string {
	p := fileName
	for _, ext := range generatedExtensions {
		if strings.HasSuffix(p, ext) {
			p = strings.TrimSuffix(p, ext) + ".js"
			break
		}
	}
	if !strings.HasPrefix(p, "/") && !strings.HasPrefix(p, ".") {
		p = "./" + p
	}
	return p
}

// ForFile returns the canonical import path of the file generated for a
// proto file. Well-known types come from the runtime package unless
// bootstrapWKT is set or the file is generated in this run.
func ForFile(file *model.File, bootstrapWKT bool, filesToGenerate []*model.File) string {
	if !bootstrapWKT && IsWellKnown(file.ProtoName) && !generated(file, filesToGenerate) {
		return RuntimePackage
	}
	return "./" + file.Name + "_pb.js"
}

func generated(file *model.File, filesToGenerate []*model.File) bool {
	for _, f := range filesToGenerate {
		if f.ProtoName == file.ProtoName {
			return true
		}
	}
	return false
}

// Rewrite applies the first matching rule to a relative specifier, or else
// the extension policy. Non-relative specifiers are returned unchanged.
// Rules only match canonical paths, which end in ".js": a path that already
// went through the extension policy is not matched again, so applying
// Rewrite to its own result is a no-op.
func Rewrite(p string, rules []Rule, ext Extension) string {
	if !IsRelative(p) {
		return p
	}
	if strings.HasSuffix(p, ".js") {
		for _, r := range rules {
			if r.Match(p) {
				return r.apply(p)
			}
		}
	}
	return WithExtension(p, ext)
}

// WithExtension replaces the canonical ".js" extension of a relative
// specifier according to ext.
func WithExtension(p string, ext Extension) string {
	if !IsRelative(p) || !strings.HasSuffix(p, ".js") {
		return p
	}
	base := strings.TrimSuffix(p, ".js")
	switch ext {
	case ExtensionNone:
		return base
	case ExtensionTS:
		return base + ".ts"
	default:
		return p
	}
}

// StripExtension removes a module file extension from a relative specifier.
func StripExtension(p string) string {
	if !IsRelative(p) {
		return p
	}
	for _, ext := range generatedExtensions {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	return p
}

// SameFile reports whether two canonical paths denote the same file.
func SameFile(a, b string) bool {
	if !IsRelative(a) || !IsRelative(b) {
		return a == b
	}
	return clean(a) == clean(b)
}

// Canonical normalizes a relative path so that every spelling of a file
// compares equal: "./x/../b_pb.js" becomes "./b_pb.js". Package specifiers
// are returned unchanged.
func Canonical(p string) string {
	if !IsRelative(p) {
		return p
	}
	c := clean(p)
	if c == ".." || strings.HasPrefix(c, "../") {
		return c
	}
	return "./" + c
}

// Relativize returns the specifier that importer uses to import target.
// Both are root-relative paths. It returns false when both denote the same
// file, in which case no import is needed. Non-relative targets are
// returned unchanged.
func Relativize(importer, target string) (string, bool) {
	if !IsRelative(target) {
		return target, true
	}
	from := clean(importer)
	to := clean(target)
	if from == to {
		return "", false
	}

	a := strings.Split(from, "/")
	a = a[:len(a)-1] // importer directory
	b := strings.Split(to, "/")

	n := 0
	for n < len(a) && n < len(b)-1 && a[n] == b[n] {
		n++
	}

	parts := make([]string, 0, len(a)-n+len(b)-n)
	for range a[n:] {
		parts = append(parts, "..")
	}
	parts = append(parts, b[n:]...)

	rel := strings.Join(parts, "/")
	if parts[0] != ".." {
		rel = "./" + rel
	}
	return rel, true
}

// clean normalizes separators and "."/".." segments of a root-relative path
// and drops the leading "./".
func clean(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return strings.TrimPrefix(path.Clean(p), "./")
}

// Options configure how canonical paths become specifiers in one run.
type Options struct {
	Style     Style
	Rules     []Rule
	Extension Extension
}

// Resolve computes the specifier importer uses for a symbol exported from
// the canonical path from. It returns false for self-imports.
func Resolve(importer, from string, opts Options) (string, bool) {
	if SameFile(importer, from) {
		return "", false
	}
	rewritten := Rewrite(from, opts.Rules, opts.Extension)
	spec, ok := Relativize(importer, rewritten)
	if !ok {
		return "", false
	}
	if opts.Style == StyleLegacyCommonJS {
		spec = StripExtension(spec)
	}
	return spec, true
}
