// SPDX-License-Identifier: MIT

package es

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// scalarNames are the names of the runtime's ScalarType enum. Its numbers
// are the field type numbers of descriptor.proto, as are protoreflect.Kind
// values.
var scalarNames = map[protoreflect.Kind]string{
	protoreflect.DoubleKind:   "DOUBLE",
	protoreflect.FloatKind:    "FLOAT",
	protoreflect.Int64Kind:    "INT64",
	protoreflect.Uint64Kind:   "UINT64",
	protoreflect.Int32Kind:    "INT32",
	protoreflect.Fixed64Kind:  "FIXED64",
	protoreflect.Fixed32Kind:  "FIXED32",
	protoreflect.BoolKind:     "BOOL",
	protoreflect.StringKind:   "STRING",
	protoreflect.BytesKind:    "BYTES",
	protoreflect.Uint32Kind:   "UINT32",
	protoreflect.Sfixed32Kind: "SFIXED32",
	protoreflect.Sfixed64Kind: "SFIXED64",
	protoreflect.Sint32Kind:   "SINT32",
	protoreflect.Sint64Kind:   "SINT64",
}

// scalarTypeRef returns the ScalarType literal used in field lists, e.g.
// "9 /* ScalarType.STRING */".
func scalarTypeRef(k protoreflect.Kind) string {
	return fmt.Sprintf("%d /* ScalarType.%s */", int(k), scalarNames[k])
}

func is64Bit(k protoreflect.Kind) bool {
	switch k {
	case protoreflect.Int64Kind, protoreflect.Uint64Kind, protoreflect.Sint64Kind,
		protoreflect.Fixed64Kind, protoreflect.Sfixed64Kind:
		return true
	}
	return false
}

// scalarTSType returns the TypeScript type of a scalar.
func scalarTSType(k protoreflect.Kind) string {
	switch {
	case k == protoreflect.StringKind:
		return "string"
	case k == protoreflect.BoolKind:
		return "boolean"
	case k == protoreflect.BytesKind:
		return "Uint8Array"
	case is64Bit(k):
		return "bigint"
	default:
		return "number"
	}
}

// scalarZero returns the proto3 zero value literal of a scalar. 64-bit
// integers are handled by the caller, their zero comes from the runtime.
func scalarZero(k protoreflect.Kind) string {
	switch k {
	case protoreflect.StringKind:
		return `""`
	case protoreflect.BoolKind:
		return "false"
	case protoreflect.BytesKind:
		return "new Uint8Array(0)"
	default:
		return "0"
	}
}
