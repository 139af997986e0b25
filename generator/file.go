// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/albertocavalcante/protoplug/importpath"
	"github.com/albertocavalcante/protoplug/model"
)

// FileInfo is a rendered file.
type FileInfo struct {
	// Name is the file name relative to the output root.
	Name string

	// Content is the import block followed by the body.
	Content string

	// Preamble is the generation banner, empty if none was set.
	Preamble string
}

const legacyPrologue = `"use strict";
Object.defineProperty(exports, "__esModule", { value: true });
`

// GeneratedFile is a single output file.
//
// Generator code appends lines with Print and refers to exports of other
// files with symbols. The file collects the symbols it references and turns
// them into import statements when it is rendered. After Render the file
// is frozen and every further call fails with a [FinalizedFileError].
//
// Names of imported symbols are chosen at Render, once every name this file
// declares is known: local declarations keep their names and a colliding
// import is aliased, wherever the import was first referenced.
type GeneratedFile struct {
	name       string
	importPath string
	opts       importpath.Options
	typeSymbol func(model.Type) Symbol
	banner     func(*model.File) string

	body     strings.Builder
	imports  *orderedMap[string, *importGroup]
	names    map[symbolKey]*importName
	refs     []*importName
	locals   map[string]bool
	preamble string
	rendered bool
}

// importGroup holds the names imported from one origin.
type importGroup struct {
	from  string
	names []*importName
}

type importName struct {
	name     string
	alias    string
	typeOnly bool
	token    string
}

// refMark delimits placeholders for imported names in the body. It cannot
// occur in generated source.
const refMark = '\x00'

func newGeneratedFile(name string, opts importpath.Options, typeSymbol func(model.Type) Symbol, banner func(*model.File) string) *GeneratedFile {
	return &GeneratedFile{
		name:       name,
		importPath: importpath.Derive(name),
		opts:       opts,
		typeSymbol: typeSymbol,
		banner:     banner,
		imports:    newOrderedMap[string, *importGroup](),
		names:      make(map[symbolKey]*importName),
		locals:     make(map[string]bool),
	}
}

// Name returns the file name.
func (f *GeneratedFile) Name() string { return f.name }

// ImportPath returns the canonical import path of the file.
func (f *GeneratedFile) ImportPath() string { return f.importPath }

// Export returns the symbol for a name this file exports and reserves the
// name, so that an imported symbol with the same name is aliased.
func (f *GeneratedFile) Export(name string) Symbol {
	f.locals[name] = true
	return NewSymbol(name, f.importPath)
}

// Print appends one line made of args followed by a newline.
//
// Strings are written as is. A [Symbol] or a [model.Type] is referenced (see
// Reference) and the text Reference returns is written. Anything else is formatted
// with fmt.Sprint.
func (f *GeneratedFile) Print(args ...any) error {
	if f.rendered {
		return &FinalizedFileError{Name: f.name, Op: "Print"}
	}
	for _, a := range args {
		f.body.WriteString(f.printable(a))
	}
	f.body.WriteByte('\n')
	return nil
}

// Append appends text without a trailing newline.
func (f *GeneratedFile) Append(text string) error {
	if f.rendered {
		return &FinalizedFileError{Name: f.name, Op: "Append"}
	}
	f.body.WriteString(text)
	return nil
}

// Reference records that the file needs s and returns the text to write to
// the body for it. Symbols exported by this file need no import and their
// name is returned. For an imported symbol the text is a placeholder that
// Render replaces with the final name: the symbol's name, or an alias
// ("Name$1") when the name is used by a different symbol. The text is only
// meaningful inside this file's body.
func (f *GeneratedFile) Reference(s Symbol) (string, error) {
	if f.rendered {
		return "", &FinalizedFileError{Name: f.name, Op: "Reference"}
	}
	return f.reference(s), nil
}

// Preamble sets the generation banner for a file generated from file.
func (f *GeneratedFile) Preamble(file *model.File) error {
	if f.rendered {
		return &FinalizedFileError{Name: f.name, Op: "Preamble"}
	}
	f.preamble = f.banner(file)
	return nil
}

func (f *GeneratedFile) printable(a any) string {
	switch v := a.(type) {
	case string:
		return v
	case Symbol:
		return f.reference(v)
	case model.Type:
		return f.reference(f.typeSymbol(v))
	default:
		return fmt.Sprint(v)
	}
}

func (f *GeneratedFile) reference(s Symbol) string {
	if importpath.SameFile(s.From, f.importPath) {
		f.locals[s.Name] = true
		return s.Name
	}

	key := s.key()
	if n, ok := f.names[key]; ok {
		if !s.TypeOnly {
			n.typeOnly = false
		}
		return n.token
	}

	n := &importName{
		name:     s.Name,
		typeOnly: s.TypeOnly,
		token:    fmt.Sprintf("%c%d%c", refMark, len(f.refs), refMark),
	}
	f.names[key] = n
	f.refs = append(f.refs, n)
	g, ok := f.imports.get(key.from)
	if !ok {
		g = &importGroup{from: key.from}
		f.imports.set(key.from, g)
	}
	g.names = append(g.names, n)
	return n.token
}

// assignAliases names the imported symbols in first-reference order. Names
// declared by the file are never given to an import.
func (f *GeneratedFile) assignAliases() {
	taken := maps.Clone(f.locals)
	for _, n := range f.refs {
		alias := n.name
		for i := 1; taken[alias]; i++ {
			alias = fmt.Sprintf("%s$%d", n.name, i)
		}
		taken[alias] = true
		n.alias = alias
	}
}

// expand replaces the placeholders of imported names in body.
func (f *GeneratedFile) expand(body string) string {
	if len(f.refs) == 0 {
		return body
	}
	var b strings.Builder
	for {
		start := strings.IndexByte(body, refMark)
		if start < 0 {
			b.WriteString(body)
			return b.String()
		}
		end := strings.IndexByte(body[start+1:], refMark)
		if end < 0 {
			b.WriteString(body)
			return b.String()
		}
		end += start + 1
		b.WriteString(body[:start])
		if i, err := strconv.Atoi(body[start+1 : end]); err == nil && i < len(f.refs) {
			b.WriteString(f.refs[i].alias)
		} else {
			b.WriteString(body[start : end+1])
		}
		body = body[end+1:]
	}
}

// Render resolves the imports and returns the final content: one import
// statement per specifier, sorted, then the body.
func (f *GeneratedFile) Render() (FileInfo, error) {
	if f.rendered {
		return FileInfo{}, &FinalizedFileError{Name: f.name, Op: "Render"}
	}
	f.rendered = true

	f.assignAliases()
	legacyJS := f.opts.Style == importpath.StyleLegacyCommonJS && strings.HasSuffix(f.name, ".js")
	stmts, err := f.importStatements(legacyJS)
	if err != nil {
		return FileInfo{}, err
	}

	body := f.expand(f.body.String())
	var b strings.Builder
	if legacyJS && (body != "" || len(stmts) > 0) {
		b.WriteString(legacyPrologue)
		b.WriteString("\n")
	}
	for _, s := range stmts {
		b.WriteString(s.text)
		b.WriteString("\n")
	}
	if len(stmts) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(body)

	return FileInfo{
		Name:     f.name,
		Content:  b.String(),
		Preamble: f.preamble,
	}, nil
}

type importStatement struct {
	spec string
	text string
}

func (f *GeneratedFile) importStatements(legacyJS bool) ([]importStatement, error) {
	// Origins that resolve to the same specifier share one statement, e.g.
	// two paths rewritten into one package.
	bySpec := newOrderedMap[string, []*importName]()
	for _, g := range f.imports.values() {
		if g.from == "" {
			return nil, errors.Newf("%s: cannot import %q: symbol has no origin", f.name, g.names[0].name)
		}
		spec, ok := importpath.Resolve(f.importPath, g.from, f.opts)
		if !ok {
			continue
		}
		prev, _ := bySpec.get(spec)
		bySpec.set(spec, append(prev, g.names...))
	}

	var stmts []importStatement
	for _, spec := range bySpec.keys() {
		names, _ := bySpec.get(spec)
		if legacyJS {
			// CommonJS has no type imports.
			names = slices.DeleteFunc(slices.Clone(names), func(n *importName) bool { return n.typeOnly })
		}
		if len(names) == 0 {
			continue
		}
		var text string
		if legacyJS {
			text = formatRequire(spec, names)
		} else {
			text = formatImport(spec, names)
		}
		stmts = append(stmts, importStatement{spec: spec, text: text})
	}
	slices.SortStableFunc(stmts, func(a, b importStatement) int {
		return strings.Compare(a.spec, b.spec)
	})
	return stmts, nil
}

func formatImport(spec string, names []*importName) string {
	allTypes := !slices.ContainsFunc(names, func(n *importName) bool { return !n.typeOnly })
	parts := make([]string, len(names))
	for i, n := range names {
		p := n.name
		if n.alias != n.name {
			p += " as " + n.alias
		}
		if n.typeOnly && !allTypes {
			p = "type " + p
		}
		parts[i] = p
	}
	keyword := "import"
	if allTypes {
		keyword = "import type"
	}
	return fmt.Sprintf("%s { %s } from %q;", keyword, strings.Join(parts, ", "), spec)
}

func formatRequire(spec string, names []*importName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		p := n.name
		if n.alias != n.name {
			p += ": " + n.alias
		}
		parts[i] = p
	}
	return fmt.Sprintf("const { %s } = require(%q);", strings.Join(parts, ", "), spec)
}
