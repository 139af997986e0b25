// SPDX-License-Identifier: MIT

package importpath

// wellKnownFiles are the proto files whose generated code ships with the
// runtime package.
var wellKnownFiles = map[string]bool{
	"google/protobuf/any.proto":             true,
	"google/protobuf/api.proto":             true,
	"google/protobuf/descriptor.proto":      true,
	"google/protobuf/duration.proto":        true,
	"google/protobuf/empty.proto":           true,
	"google/protobuf/field_mask.proto":      true,
	"google/protobuf/source_context.proto":  true,
	"google/protobuf/struct.proto":          true,
	"google/protobuf/timestamp.proto":       true,
	"google/protobuf/type.proto":            true,
	"google/protobuf/wrappers.proto":        true,
	"google/protobuf/compiler/plugin.proto": true,
}

// IsWellKnown reports whether protoName is a well-known type file.
func IsWellKnown(protoName string) bool {
	return wellKnownFiles[protoName]
}
