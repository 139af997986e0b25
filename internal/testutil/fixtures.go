// SPDX-License-Identifier: MIT

package testutil

// ExampleSet is a FileDescriptorSet with two proto3 files: "a.proto" defines
// example.Foo (with a nested example.Foo.Inner) and imports "b.proto", which
// defines example.Bar and example.Kind.
const ExampleSet = `
file {
  name: "b.proto"
  package: "example"
  syntax: "proto3"
  message_type {
    name: "Bar"
    field { name: "id" number: 1 label: LABEL_OPTIONAL type: TYPE_STRING json_name: "id" }
  }
  enum_type {
    name: "Kind"
    value { name: "KIND_UNSPECIFIED" number: 0 }
    value { name: "KIND_PRIMARY" number: 1 }
  }
}
file {
  name: "a.proto"
  package: "example"
  syntax: "proto3"
  dependency: "b.proto"
  message_type {
    name: "Foo"
    field { name: "name" number: 1 label: LABEL_OPTIONAL type: TYPE_STRING json_name: "name" }
    field { name: "bar" number: 2 label: LABEL_OPTIONAL type: TYPE_MESSAGE type_name: ".example.Bar" json_name: "bar" }
    field { name: "bars" number: 3 label: LABEL_REPEATED type: TYPE_MESSAGE type_name: ".example.Bar" json_name: "bars" }
    field { name: "tags" number: 4 label: LABEL_REPEATED type: TYPE_MESSAGE type_name: ".example.Foo.TagsEntry" json_name: "tags" }
    field { name: "kind" number: 5 label: LABEL_OPTIONAL type: TYPE_ENUM type_name: ".example.Kind" json_name: "kind" }
    field { name: "max_count" number: 6 label: LABEL_OPTIONAL type: TYPE_INT32 json_name: "maxCount" proto3_optional: true oneof_index: 0 }
    field { name: "inner" number: 7 label: LABEL_OPTIONAL type: TYPE_MESSAGE type_name: ".example.Foo.Inner" json_name: "inner" }
    nested_type {
      name: "TagsEntry"
      field { name: "key" number: 1 label: LABEL_OPTIONAL type: TYPE_STRING json_name: "key" }
      field { name: "value" number: 2 label: LABEL_OPTIONAL type: TYPE_STRING json_name: "value" }
      options { map_entry: true }
    }
    nested_type {
      name: "Inner"
      field { name: "ok" number: 1 label: LABEL_OPTIONAL type: TYPE_BOOL json_name: "ok" }
    }
    oneof_decl { name: "_max_count" }
  }
}
`

// TimestampSet is a FileDescriptorSet with a trimmed
// "google/protobuf/timestamp.proto" and "event.proto" using it.
const TimestampSet = `
file {
  name: "google/protobuf/timestamp.proto"
  package: "google.protobuf"
  syntax: "proto3"
  message_type {
    name: "Timestamp"
    field { name: "seconds" number: 1 label: LABEL_OPTIONAL type: TYPE_INT64 json_name: "seconds" }
    field { name: "nanos" number: 2 label: LABEL_OPTIONAL type: TYPE_INT32 json_name: "nanos" }
  }
}
file {
  name: "event.proto"
  package: "example"
  syntax: "proto3"
  dependency: "google/protobuf/timestamp.proto"
  message_type {
    name: "Event"
    field { name: "at" number: 1 label: LABEL_OPTIONAL type: TYPE_MESSAGE type_name: ".google.protobuf.Timestamp" json_name: "at" }
  }
}
`
