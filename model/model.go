// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package model provides a read-only view of the files, messages, enums and
// fields of a CodeGeneratorRequest.
//
// The view is built once per run from the raw file descriptors and is never
// mutated afterwards. Identity of every element is its fully-qualified name
// (or, for files, the proto file name), so generators can refer to elements of
// files that have not been visited yet.
package model

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// Type is a message or an enum that generated code can import.
type Type interface {
	// TypeName is the fully-qualified protobuf name, without a leading dot.
	TypeName() string

	// LocalName is the identifier the type is exported as.
	LocalName() string

	// DeclFile is the file declaring the type.
	DeclFile() *File
}

// Syntax values reported by [File.Syntax].
const (
	SyntaxProto2   = "proto2"
	SyntaxProto3   = "proto3"
	SyntaxEditions = "editions"
)

// File is a single .proto file of the request.
type File struct {
	// Name is the proto file name without the ".proto" suffix,
	// e.g. "foo/bar" for "foo/bar.proto".
	Name string

	// ProtoName is the file name as it appears in the request.
	ProtoName string

	// Package is the protobuf package.
	Package string

	// Syntax is one of SyntaxProto2, SyntaxProto3 or SyntaxEditions.
	Syntax string

	// Enums are the top-level enums, in declaration order.
	Enums []*Enum

	// Messages are the top-level messages, in declaration order.
	Messages []*Message

	// Dependencies are the files imported by this file.
	Dependencies []*File

	// Desc is the underlying descriptor.
	Desc protoreflect.FileDescriptor
}

// AllEnums returns every enum of the file, nested ones included. Enums are
// listed in declaration order, nested enums after the enums of their parent
// scope.
func (f *File) AllEnums() []*Enum {
	var out []*Enum
	out = append(out, f.Enums...)
	for _, m := range f.AllMessages() {
		out = append(out, m.NestedEnums...)
	}
	return out
}

// AllMessages returns every message of the file, nested ones included, each
// followed by its nested messages. Map entry messages are skipped.
func (f *File) AllMessages() []*Message {
	var out []*Message
	var walk func([]*Message)
	walk = func(msgs []*Message) {
		for _, m := range msgs {
			if m.MapEntry {
				continue
			}
			out = append(out, m)
			walk(m.NestedMessages)
		}
	}
	walk(f.Messages)
	return out
}

// Message is a protobuf message.
type Message struct {
	// File is the declaring file.
	File *File

	// Parent is the enclosing message, nil for top-level messages.
	Parent *Message

	// Fields are the message fields, in declaration order.
	Fields []*Field

	NestedMessages []*Message
	NestedEnums    []*Enum

	// MapEntry is set for synthesized map entry messages.
	MapEntry bool

	Desc protoreflect.MessageDescriptor

	localName string
}

func (m *Message) TypeName() string  { return string(m.Desc.FullName()) }
func (m *Message) LocalName() string { return m.localName }
func (m *Message) DeclFile() *File   { return m.File }

func (m *Message) String() string { return "message " + m.TypeName() }

// Enum is a protobuf enum.
type Enum struct {
	File   *File
	Parent *Message
	Values []*EnumValue
	Desc   protoreflect.EnumDescriptor

	localName string
}

func (e *Enum) TypeName() string  { return string(e.Desc.FullName()) }
func (e *Enum) LocalName() string { return e.localName }
func (e *Enum) DeclFile() *File   { return e.File }

func (e *Enum) String() string { return "enum " + e.TypeName() }

// EnumValue is a single enum constant.
type EnumValue struct {
	Parent *Enum

	// Name is the proto name, e.g. "KIND_UNSPECIFIED".
	Name string

	// LocalName is the name with the shared enum prefix removed,
	// e.g. "UNSPECIFIED".
	LocalName string

	Number int32
}

// Declaration returns the value as it appears in the .proto source.
func (v *EnumValue) Declaration() string {
	return fmt.Sprintf("%s = %d;", v.Name, v.Number)
}

// FieldKind classifies a field by the kind of value it holds.
type FieldKind string

const (
	FieldScalar  FieldKind = "scalar"
	FieldEnum    FieldKind = "enum"
	FieldMessage FieldKind = "message"
	FieldMap     FieldKind = "map"
)

// Field is a message field.
type Field struct {
	Parent *Message

	// Name is the proto field name, e.g. "foo_bar".
	Name string

	// JSONName is the JSON name, e.g. "fooBar".
	JSONName string

	// LocalName is the property name in generated code, e.g. "fooBar".
	LocalName string

	Number int32
	Kind   FieldKind

	// Scalar is the scalar kind for FieldScalar fields.
	Scalar protoreflect.Kind

	// Message is set for FieldMessage fields.
	Message *Message

	// Enum is set for FieldEnum fields.
	Enum *Enum

	// MapKey and MapValue are set for FieldMap fields.
	MapKey   protoreflect.Kind
	MapValue *Field

	// Repeated is set for list fields.
	Repeated bool

	// Optional is set for scalar and enum fields with explicit presence
	// outside of a oneof.
	Optional bool

	// Oneof is the name of the enclosing oneof, empty if none.
	Oneof string

	Desc protoreflect.FieldDescriptor
}

// Declaration returns the field as it appears in the .proto source, e.g.
// "repeated example.Bar bars = 3;".
func (f *Field) Declaration() string {
	var b strings.Builder
	switch {
	case f.Kind == FieldMap:
		fmt.Fprintf(&b, "map<%s, %s>", f.MapKey, f.MapValue.typeString())
	default:
		switch {
		case f.Repeated:
			b.WriteString("repeated ")
		case f.Desc.Cardinality() == protoreflect.Required:
			b.WriteString("required ")
		case f.Desc.HasOptionalKeyword():
			b.WriteString("optional ")
		}
		b.WriteString(f.typeString())
	}
	fmt.Fprintf(&b, " %s = %d;", f.Name, f.Number)
	return b.String()
}

func (f *Field) typeString() string {
	switch f.Kind {
	case FieldMessage:
		return f.Message.TypeName()
	case FieldEnum:
		return f.Enum.TypeName()
	default:
		return f.Scalar.String()
	}
}
