// SPDX-License-Identifier: MIT

package generator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/albertocavalcante/protoplug/importpath"
	"github.com/albertocavalcante/protoplug/internal/testutil"
	"github.com/albertocavalcante/protoplug/model"
)

var testInfo = PluginInfo{Name: "protoc-gen-test", Version: "v0.1.0"}

// newTestSchema returns an unprepared schema over text.
func newTestSchema(t *testing.T, text, param string, generate ...string) *Schema {
	t.Helper()

	p, err := ParseParameter(param, nil)
	require.NoError(t, err)
	s, err := NewSchema(testutil.NewRequest(t, text, generate...), p, testInfo)
	require.NoError(t, err)
	return s
}

// preparedSchema returns a schema over testutil.ExampleSet prepared with
// the style of param.
func preparedSchema(t *testing.T, param string) *Schema {
	t.Helper()

	s := newTestSchema(t, testutil.ExampleSet, param, "a.proto")
	require.NoError(t, s.Prepare(s.Parameter.ImportStyle))
	return s
}

func fileNames(files []*model.File) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.ProtoName
	}
	return names
}

func TestNewSchema_Selection(t *testing.T) {
	s := newTestSchema(t, testutil.ExampleSet, "", "a.proto", "b.proto")

	// Request order is irrelevant, files keep descriptor set order.
	if diff := cmp.Diff([]string{"b.proto", "a.proto"}, fileNames(s.Files)); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b.proto", "a.proto"}, fileNames(s.AllFiles)); diff != "" {
		t.Errorf("AllFiles mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, StateCollecting, s.State())
}

func TestNewSchema_MissingFiles(t *testing.T) {
	req := testutil.NewRequest(t, testutil.ExampleSet, "a.proto", "missing.proto", "other.proto")

	s, err := NewSchema(req, DefaultParameter(), testInfo)
	require.Nil(t, s)

	var missing *MissingFileError
	require.ErrorAs(t, err, &missing)
	if diff := cmp.Diff([]string{"missing.proto", "other.proto"}, missing.Names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	require.EqualError(t, err, "files_to_generate missing in the request: missing.proto, other.proto")
}

func TestNewSchema_InvalidDescriptors(t *testing.T) {
	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{"a.proto"},
		ProtoFile:      testutil.ParseFiles(t, testutil.ExampleSet)[1:],
	}
	_, err := NewSchema(req, DefaultParameter(), testInfo)
	require.Error(t, err)
}

func TestSchema_Lifecycle(t *testing.T) {
	s := newTestSchema(t, testutil.ExampleSet, "")

	_, err := s.GenerateFile("a_pb.ts")
	var ordering *OrderingError
	require.ErrorAs(t, err, &ordering)
	require.EqualError(t, err, "Prepare() must be called before GenerateFile()")

	_, err = s.Finalize()
	require.ErrorAs(t, err, &ordering)

	require.NoError(t, s.Prepare(importpath.StyleModule))
	require.Equal(t, StatePrepared, s.State())

	err = s.Prepare(importpath.StyleModule)
	require.ErrorAs(t, err, &ordering)
	require.EqualError(t, err, "Prepare() must be called only once")

	_, err = s.GenerateFile("a_pb.ts")
	require.NoError(t, err)

	_, err = s.Finalize()
	require.NoError(t, err)
	require.Equal(t, StateFinalized, s.State())

	_, err = s.Finalize()
	require.ErrorAs(t, err, &ordering)

	_, err = s.GenerateFile("b_pb.ts")
	require.ErrorAs(t, err, &ordering)
	require.Equal(t, StateFinalized, ordering.State)
}

func TestSchema_PrepareInvalidStyle(t *testing.T) {
	s := newTestSchema(t, testutil.ExampleSet, "")

	var perr *ParameterError
	require.ErrorAs(t, s.Prepare("amd"), &perr)
	require.Equal(t, StateCollecting, s.State())
}

func TestSchema_DuplicateFileName(t *testing.T) {
	s := preparedSchema(t, "")

	_, err := s.GenerateFile("x")
	require.NoError(t, err)

	_, err = s.GenerateFile("x")
	var dup *DuplicateFileNameError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "x", dup.Name)
}

func TestSchema_EmptyFiles(t *testing.T) {
	tests := []struct {
		name  string
		param string
		want  []FileInfo
	}{
		{
			name:  "suppressed",
			param: "",
			want: []FileInfo{
				{Name: "full_pb.ts", Content: "export {};\n"},
			},
		},
		{
			name:  "kept",
			param: "keep_empty_files=true",
			want: []FileInfo{
				{Name: "empty_pb.ts", Content: ""},
				{Name: "full_pb.ts", Content: "export {};\n"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := preparedSchema(t, tt.param)

			_, err := s.GenerateFile("empty_pb.ts")
			require.NoError(t, err)
			full, err := s.GenerateFile("full_pb.ts")
			require.NoError(t, err)
			require.NoError(t, full.Print("export {};"))

			got, err := s.Finalize()
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Finalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchema_FinalizeAborts(t *testing.T) {
	s := preparedSchema(t, "")

	ok, err := s.GenerateFile("ok_pb.ts")
	require.NoError(t, err)
	require.NoError(t, ok.Print("export {};"))

	bad, err := s.GenerateFile("bad_pb.ts")
	require.NoError(t, err)
	require.NoError(t, bad.Print("export const x = ", Symbol{Name: "Orphan"}, ";"))

	files, err := s.Finalize()
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad_pb.ts")
	require.Empty(t, files)
}

func TestSchema_TypeSymbol(t *testing.T) {
	tests := []struct {
		name     string
		param    string
		generate []string
		want     Symbol
	}{
		{
			name:     "well-known type from runtime",
			generate: []string{"event.proto"},
			want:     Symbol{Name: "Timestamp", From: "@bufbuild/protobuf", Runtime: true},
		},
		{
			name:     "bootstrap",
			param:    "bootstrap_wkt",
			generate: []string{"event.proto"},
			want:     Symbol{Name: "Timestamp", From: "./google/protobuf/timestamp_pb.js"},
		},
		{
			name:     "generated in this run",
			generate: []string{"google/protobuf/timestamp.proto", "event.proto"},
			want:     Symbol{Name: "Timestamp", From: "./google/protobuf/timestamp_pb.js"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSchema(t, testutil.TimestampSet, tt.param, tt.generate...)

			typ, ok := s.Set().Type("google.protobuf.Timestamp")
			require.True(t, ok)
			if diff := cmp.Diff(tt.want, s.TypeSymbol(typ)); diff != "" {
				t.Errorf("TypeSymbol() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The scenario of a file importing a type of its dependency, with the .ts
// extension policy.
func TestSchema_CrossFileImport(t *testing.T) {
	s := preparedSchema(t, "target=ts,import_extension=.ts")

	bar, ok := s.Set().Type("example.Bar")
	require.True(t, ok)

	f, err := s.GenerateFile("a_pb.ts")
	require.NoError(t, err)
	require.NoError(t, f.Print("export const bar = new ", bar, "();"))

	files, err := s.Finalize()
	require.NoError(t, err)

	want := []FileInfo{{
		Name: "a_pb.ts",
		Content: `import { Bar } from "./b_pb.ts";

export const bar = new Bar();
`,
	}}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("Finalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_Preamble(t *testing.T) {
	const set = `
file {
  name: "c.proto"
  syntax: "proto3"
  message_type { name: "C" }
  source_code_info {
    location {
      path: [12]
      span: [3, 0, 18]
      leading_detached_comments: " Copyright 2026 Example.\n"
      leading_detached_comments: " Second block.\n Two lines.\n"
    }
  }
}
`
	tests := []struct {
		name  string
		text  string
		file  string
		param string
		want  string
	}{
		{
			name:  "package and options",
			text:  testutil.ExampleSet,
			file:  "a.proto",
			param: "target=ts",
			want: `// @generated by protoc-gen-test v0.1.0 with parameter "target=ts"
// @generated from file a.proto (package example, syntax proto3)
/* eslint-disable */
// @ts-nocheck
`,
		},
		{
			name:  "without parameter or ts-nocheck",
			text:  testutil.ExampleSet,
			file:  "a.proto",
			param: "ts_nocheck=false",
			want: `// @generated by protoc-gen-test v0.1.0 with parameter "ts_nocheck=false"
// @generated from file a.proto (package example, syntax proto3)
/* eslint-disable */
`,
		},
		{
			name: "syntax comments",
			text: set,
			file: "c.proto",
			want: `// Copyright 2026 Example.

// Second block.
// Two lines.

// @generated by protoc-gen-test v0.1.0
// @generated from file c.proto (syntax proto3)
/* eslint-disable */
// @ts-nocheck
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSchema(t, tt.text, tt.param, tt.file)
			require.NoError(t, s.Prepare(importpath.StyleModule))

			f, err := s.GenerateFile("out_pb.ts")
			require.NoError(t, err)
			require.NoError(t, f.Preamble(s.Files[0]))
			require.NoError(t, f.Print("export {};"))

			files, err := s.Finalize()
			require.NoError(t, err)
			require.Len(t, files, 1)
			if diff := cmp.Diff(tt.want, files[0].Preamble); diff != "" {
				t.Errorf("Preamble mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
