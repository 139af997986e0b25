// SPDX-License-Identifier: MIT

package generator

import "github.com/albertocavalcante/protoplug/importpath"

// RuntimeImports are the symbols of the runtime package that generated code
// commonly needs.
type RuntimeImports struct {
	Message        Symbol
	Proto2         Symbol
	Proto3         Symbol
	ProtoInt64     Symbol
	CreateRegistry Symbol

	PartialMessage       Symbol
	PlainMessage         Symbol
	FieldList            Symbol
	BinaryReadOptions    Symbol
	JsonReadOptions      Symbol
	JsonValue            Symbol
	IMessageTypeRegistry Symbol
}

func newRuntimeImports() RuntimeImports {
	value := func(name string) Symbol {
		return Symbol{Name: name, From: importpath.RuntimePackage, Runtime: true}
	}
	return RuntimeImports{
		Message:        value("Message"),
		Proto2:         value("proto2"),
		Proto3:         value("proto3"),
		ProtoInt64:     value("protoInt64"),
		CreateRegistry: value("createRegistry"),

		PartialMessage:       value("PartialMessage").ToTypeOnly(),
		PlainMessage:         value("PlainMessage").ToTypeOnly(),
		FieldList:            value("FieldList").ToTypeOnly(),
		BinaryReadOptions:    value("BinaryReadOptions").ToTypeOnly(),
		JsonReadOptions:      value("JsonReadOptions").ToTypeOnly(),
		JsonValue:            value("JsonValue").ToTypeOnly(),
		IMessageTypeRegistry: value("IMessageTypeRegistry").ToTypeOnly(),
	}
}

// ProtoRuntime returns the proto2 or proto3 runtime symbol for a syntax.
// Editions files use the proto2 runtime, which honors explicit presence.
func (r RuntimeImports) ProtoRuntime(syntax string) Symbol {
	if syntax == "proto3" {
		return r.Proto3
	}
	return r.Proto2
}
