// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"strings"

	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Set is the descriptor graph of one request.
type Set struct {
	// Files are all files in request order.
	Files []*File

	files map[string]*File
	types map[string]Type
}

// NewSet links the given file descriptors and builds the view. Every import
// of every file must be part of protos.
func NewSet(protos []*descriptorpb.FileDescriptorProto) (*Set, error) {
	reg, err := protodesc.NewFiles(&descriptorpb.FileDescriptorSet{File: protos})
	if err != nil {
		return nil, errors.Wrap(err, "link file descriptors")
	}

	s := &Set{
		files: make(map[string]*File, len(protos)),
		types: make(map[string]Type),
	}

	// Declare all files and types first, so fields may refer to types of
	// files that come later in the request.
	for _, p := range protos {
		fd, err := reg.FindFileByPath(p.GetName())
		if err != nil {
			return nil, errors.Wrapf(err, "find file %q", p.GetName())
		}
		f := s.newFile(fd)
		s.Files = append(s.Files, f)
		s.files[f.ProtoName] = f
	}

	for _, f := range s.Files {
		imports := f.Desc.Imports()
		for i := range imports.Len() {
			dep, ok := s.files[imports.Get(i).Path()]
			if !ok {
				return nil, errors.Newf("file %q imports unknown file %q", f.ProtoName, imports.Get(i).Path())
			}
			f.Dependencies = append(f.Dependencies, dep)
		}
		for _, m := range f.allMessagesWithEntries() {
			if err := s.linkFields(m); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// File returns the file with the given proto name, e.g. "foo/bar.proto".
func (s *Set) File(protoName string) (*File, bool) {
	f, ok := s.files[protoName]
	return f, ok
}

// Type returns the message or enum with the given fully-qualified name.
func (s *Set) Type(typeName string) (Type, bool) {
	t, ok := s.types[strings.TrimPrefix(typeName, ".")]
	return t, ok
}

func (s *Set) newFile(fd protoreflect.FileDescriptor) *File {
	f := &File{
		Name:      strings.TrimSuffix(fd.Path(), ".proto"),
		ProtoName: fd.Path(),
		Package:   string(fd.Package()),
		Syntax:    syntaxName(fd),
		Desc:      fd,
	}
	enums := fd.Enums()
	for i := range enums.Len() {
		f.Enums = append(f.Enums, s.newEnum(f, nil, enums.Get(i)))
	}
	msgs := fd.Messages()
	for i := range msgs.Len() {
		f.Messages = append(f.Messages, s.newMessage(f, nil, msgs.Get(i)))
	}
	return f
}

func (s *Set) newMessage(f *File, parent *Message, md protoreflect.MessageDescriptor) *Message {
	m := &Message{
		File:      f,
		Parent:    parent,
		MapEntry:  md.IsMapEntry(),
		Desc:      md,
		localName: typeLocalName(f.Package, string(md.FullName())),
	}
	s.types[m.TypeName()] = m
	enums := md.Enums()
	for i := range enums.Len() {
		m.NestedEnums = append(m.NestedEnums, s.newEnum(f, m, enums.Get(i)))
	}
	msgs := md.Messages()
	for i := range msgs.Len() {
		m.NestedMessages = append(m.NestedMessages, s.newMessage(f, m, msgs.Get(i)))
	}
	return m
}

func (s *Set) newEnum(f *File, parent *Message, ed protoreflect.EnumDescriptor) *Enum {
	e := &Enum{
		File:      f,
		Parent:    parent,
		Desc:      ed,
		localName: typeLocalName(f.Package, string(ed.FullName())),
	}
	s.types[e.TypeName()] = e

	values := ed.Values()
	names := make([]string, values.Len())
	for i := range values.Len() {
		names[i] = string(values.Get(i).Name())
	}
	prefix := sharedEnumPrefix(string(ed.Name()), names)
	for i := range values.Len() {
		vd := values.Get(i)
		name := string(vd.Name())
		e.Values = append(e.Values, &EnumValue{
			Parent:    e,
			Name:      name,
			LocalName: safeObjectProperty(name[len(prefix):]),
			Number:    int32(vd.Number()),
		})
	}
	return e
}

func (s *Set) linkFields(m *Message) error {
	fields := m.Desc.Fields()
	for i := range fields.Len() {
		fld, err := s.newField(m, fields.Get(i))
		if err != nil {
			return err
		}
		m.Fields = append(m.Fields, fld)
	}
	return nil
}

func (s *Set) newField(parent *Message, fd protoreflect.FieldDescriptor) (*Field, error) {
	f := &Field{
		Parent:    parent,
		Name:      string(fd.Name()),
		JSONName:  fd.JSONName(),
		LocalName: safeObjectProperty(protoCamelCase(string(fd.Name()))),
		Number:    int32(fd.Number()),
		Repeated:  fd.IsList(),
		Desc:      fd,
	}
	if od := fd.ContainingOneof(); od != nil && !od.IsSynthetic() {
		f.Oneof = string(od.Name())
	}

	if fd.IsMap() {
		f.Kind = FieldMap
		f.MapKey = fd.MapKey().Kind()
		value, err := s.newField(parent, fd.MapValue())
		if err != nil {
			return nil, err
		}
		f.MapValue = value
		return f, nil
	}

	if err := s.resolveKind(f, fd); err != nil {
		return nil, err
	}
	f.Optional = f.Kind != FieldMessage && !f.Repeated && f.Oneof == "" && fd.HasPresence()
	return f, nil
}

func (s *Set) resolveKind(f *Field, fd protoreflect.FieldDescriptor) error {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		t, ok := s.types[string(fd.Message().FullName())]
		if !ok {
			return errors.Newf("field %s: unknown message %s", fd.FullName(), fd.Message().FullName())
		}
		f.Kind = FieldMessage
		f.Message = t.(*Message)
	case protoreflect.EnumKind:
		t, ok := s.types[string(fd.Enum().FullName())]
		if !ok {
			return errors.Newf("field %s: unknown enum %s", fd.FullName(), fd.Enum().FullName())
		}
		f.Kind = FieldEnum
		f.Enum = t.(*Enum)
	default:
		f.Kind = FieldScalar
		f.Scalar = fd.Kind()
	}
	return nil
}

// allMessagesWithEntries is AllMessages including map entries, whose fields
// must be linked too.
func (f *File) allMessagesWithEntries() []*Message {
	var out []*Message
	var walk func([]*Message)
	walk = func(msgs []*Message) {
		for _, m := range msgs {
			out = append(out, m)
			walk(m.NestedMessages)
		}
	}
	walk(f.Messages)
	return out
}

func syntaxName(fd protoreflect.FileDescriptor) string {
	switch fd.Syntax() {
	case protoreflect.Proto3:
		return SyntaxProto3
	case protoreflect.Editions:
		return SyntaxEditions
	default:
		return SyntaxProto2
	}
}
