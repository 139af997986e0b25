// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package es

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/albertocavalcante/protoplug/generator"
	"github.com/albertocavalcante/protoplug/model"
)

// printer wraps a generated file and keeps the first error, so emitters can
// print without checking every call.
type printer struct {
	f   *generator.GeneratedFile
	s   *generator.Schema
	err error
}

func newPrinter(s *generator.Schema, name string) (*printer, error) {
	f, err := s.GenerateFile(name)
	if err != nil {
		return nil, err
	}
	return &printer{f: f, s: s}, nil
}

func (p *printer) print(args ...any) {
	if p.err == nil {
		p.err = p.f.Print(args...)
	}
}

func (p *printer) preamble(file *model.File) {
	if p.err == nil {
		p.err = p.f.Preamble(file)
	}
}

// typeRef returns a type-only reference to a message or enum.
func (p *printer) typeRef(t model.Type) generator.Symbol {
	return p.s.TypeSymbol(t).ToTypeOnly()
}

// runtime returns the proto2 or proto3 runtime of a file.
func (p *printer) runtime(file *model.File) generator.Symbol {
	return p.s.Runtime.ProtoRuntime(file.Syntax)
}

// doc prints a JSDoc block with the leading comments of desc followed by
// the given tag lines.
func (p *printer) doc(indent string, desc protoreflect.Descriptor, tags ...string) {
	var lines []string
	if desc != nil {
		lines = commentLines(desc)
		if len(lines) > 0 {
			lines = append(lines, "")
		}
	}
	lines = append(lines, tags...)
	if desc != nil && deprecated(desc) {
		lines = append(lines, "@deprecated")
	}

	p.print(indent, "/**")
	for _, l := range lines {
		if l == "" {
			p.print(indent, " *")
			continue
		}
		p.print(indent, " * ", l)
	}
	p.print(indent, " */")
}

func commentLines(desc protoreflect.Descriptor) []string {
	file := desc.ParentFile()
	if file == nil {
		return nil
	}
	c := file.SourceLocations().ByDescriptor(desc).LeadingComments
	if strings.TrimSpace(c) == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(c, "\n"), "\n")
	for i, l := range lines {
		// "// foo" comments keep the space after the slashes.
		lines[i] = strings.TrimRight(strings.TrimPrefix(l, " "), " ")
		// Nested block comments would end the JSDoc block.
		lines[i] = strings.ReplaceAll(lines[i], "*/", "*\\/")
	}
	return lines
}

func deprecated(desc protoreflect.Descriptor) bool {
	opts, ok := desc.Options().(interface{ GetDeprecated() bool })
	return ok && opts.GetDeprecated()
}

// fieldInfo returns the field list entry of f, e.g.
// `{ no: 1, name: "id", kind: "scalar", T: 9 /* ScalarType.STRING */ },`.
func (p *printer) fieldInfo(f *model.Field) []any {
	rt := p.runtime(f.Parent.File)
	args := []any{fmt.Sprintf(`{ no: %d, name: "%s", kind: "%s", `, f.Number, f.Name, f.Kind)}

	switch f.Kind {
	case model.FieldScalar:
		args = append(args, "T: ", scalarTypeRef(f.Scalar))
	case model.FieldEnum:
		args = append(args, "T: ", rt, ".getEnumType(", f.Enum, ")")
	case model.FieldMessage:
		args = append(args, "T: ", f.Message)
	case model.FieldMap:
		args = append(args, "K: ", scalarTypeRef(f.MapKey), ", V: {kind: \"", string(f.MapValue.Kind), "\", T: ")
		switch f.MapValue.Kind {
		case model.FieldEnum:
			args = append(args, rt, ".getEnumType(", f.MapValue.Enum, ")")
		case model.FieldMessage:
			args = append(args, f.MapValue.Message)
		default:
			args = append(args, scalarTypeRef(f.MapValue.Scalar))
		}
		args = append(args, "}")
	}

	if f.Repeated {
		args = append(args, ", repeated: true")
	}
	if f.Optional {
		args = append(args, ", opt: true")
	}
	if f.Oneof != "" {
		args = append(args, fmt.Sprintf(`, oneof: "%s"`, f.Oneof))
	}
	return append(args, " },")
}

// fieldTSType returns the TypeScript type of a field property. Message and
// enum types are referenced with ref.
func fieldTSType(f *model.Field, ref func(model.Type) any) []any {
	var elem []any
	switch f.Kind {
	case model.FieldMap:
		v := fieldTSType(f.MapValue, ref)
		out := append([]any{"{ [key: string]: "}, v...)
		return append(out, " }")
	case model.FieldMessage:
		elem = []any{ref(f.Message)}
	case model.FieldEnum:
		elem = []any{ref(f.Enum)}
	default:
		elem = []any{scalarTSType(f.Scalar)}
	}
	if f.Repeated {
		elem = append(elem, "[]")
	}
	return elem
}

// optionalProperty reports whether a field is declared with "?:".
func optionalProperty(f *model.Field) bool {
	if f.Repeated || f.Kind == model.FieldMap {
		return false
	}
	if f.Kind == model.FieldMessage || f.Optional || f.Oneof != "" {
		return true
	}
	// Without proto3 implicit presence, scalar and enum fields are unset by
	// default.
	return f.Parent.File.Syntax != model.SyntaxProto3
}

// declaration is an enum or a message.
type declaration struct {
	enum    *model.Enum
	message *model.Message
}

// declarations returns the enums and messages of file in generation order:
// top level enums, then each message followed by its nested enums and
// nested messages.
func declarations(file *model.File) []declaration {
	var out []declaration
	for _, e := range file.Enums {
		out = append(out, declaration{enum: e})
	}
	var walk func(m *model.Message)
	walk = func(m *model.Message) {
		if m.MapEntry {
			return
		}
		out = append(out, declaration{message: m})
		for _, e := range m.NestedEnums {
			out = append(out, declaration{enum: e})
		}
		for _, n := range m.NestedMessages {
			walk(n)
		}
	}
	for _, m := range file.Messages {
		walk(m)
	}
	return out
}
