// SPDX-License-Identifier: MIT

// Package testutil provides testing utilities for protoplug.
package testutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

// Case represents a parsed test case from a txtar archive.
type Case struct {
	// Name is the test case name (typically the filename without extension).
	Name string

	// Description is the first comment block before any files.
	Description string

	// Parameter is the plugin parameter from a "Parameter: ..." line.
	Parameter string

	// Generate lists the files to generate from a "Generate: a.proto, b.proto"
	// line. Defaults to every file of the input.
	Generate []string

	// Input is the contents of "input.txtpb", a FileDescriptorSet in
	// protobuf text format.
	Input []byte

	// Want maps generated file names to expected content.
	Want map[string][]byte
}

// ParseCase parses a txtar archive into a test Case.
// The archive should contain:
//   - A description comment (text before first file)
//   - An "input.txtpb" file with the FileDescriptorSet
//   - Zero or more "want/<filename>" files with expected output
//
// A case without want files expects the run to produce no files.
func ParseCase(name string, ar *txtar.Archive) (*Case, error) {
	c := &Case{
		Name:        name,
		Description: string(ar.Comment),
		Want:        make(map[string][]byte),
	}

	c.parseHeader()

	for _, f := range ar.Files {
		switch {
		case f.Name == "input.txtpb":
			c.Input = f.Data
		case strings.HasPrefix(f.Name, "want/"):
			relPath := strings.TrimPrefix(f.Name, "want/")
			c.Want[relPath] = f.Data
		default:
			return nil, fmt.Errorf("unexpected file in archive: %q (expected input.txtpb or want/*)", f.Name)
		}
	}

	if c.Input == nil {
		return nil, fmt.Errorf("missing input.txtpb in archive")
	}

	return c, nil
}

// parseHeader extracts "Parameter:" and "Generate:" lines from the description.
func (c *Case) parseHeader() {
	for _, line := range strings.Split(c.Description, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Parameter:"):
			c.Parameter = strings.TrimSpace(strings.TrimPrefix(line, "Parameter:"))
		case strings.HasPrefix(line, "Generate:"):
			for _, f := range strings.Split(strings.TrimPrefix(line, "Generate:"), ",") {
				if f = strings.TrimSpace(f); f != "" {
					c.Generate = append(c.Generate, f)
				}
			}
		}
	}
}

// Request builds the CodeGeneratorRequest described by the case.
func (c *Case) Request() (*pluginpb.CodeGeneratorRequest, error) {
	set := &descriptorpb.FileDescriptorSet{}
	if err := prototext.Unmarshal(c.Input, set); err != nil {
		return nil, fmt.Errorf("parse input.txtpb: %w", err)
	}
	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: c.Generate,
		ProtoFile:      set.GetFile(),
	}
	if c.Parameter != "" {
		req.Parameter = proto.String(c.Parameter)
	}
	if len(req.FileToGenerate) == 0 {
		for _, f := range set.GetFile() {
			req.FileToGenerate = append(req.FileToGenerate, f.GetName())
		}
	}
	return req, nil
}

// GenerateFunc runs a generator for a request.
// It returns a map of filename to content.
type GenerateFunc func(req *pluginpb.CodeGeneratorRequest) (map[string][]byte, error)

// Run executes the test case using the provided generate function.
// It compares generated output against expected output and reports differences.
func (c *Case) Run(t *testing.T, generate GenerateFunc) {
	t.Helper()

	req, err := c.Request()
	if err != nil {
		t.Fatal(err)
	}

	got, err := generate(req)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	Compare(t, c.Want, got)
}

// Compare reports missing, unexpected and differing files.
func Compare(t *testing.T, want, got map[string][]byte) {
	t.Helper()

	for wantFile := range want {
		if _, ok := got[wantFile]; !ok {
			t.Errorf("missing output file: %q", wantFile)
		}
	}

	for gotFile := range got {
		if _, ok := want[gotFile]; !ok {
			t.Errorf("unexpected output file: %q", gotFile)
		}
	}

	for wantFile, wantContent := range want {
		gotContent, ok := got[wantFile]
		if !ok {
			continue // Already reported as missing
		}

		// Normalize line endings and trailing whitespace
		wantNorm := normalizeContent(wantContent)
		gotNorm := normalizeContent(gotContent)

		if diff := cmp.Diff(wantNorm, gotNorm); diff != "" {
			t.Errorf("file %q mismatch (-want +got):\n%s", wantFile, diff)
		}
	}
}

// normalizeContent normalizes content for comparison:
// - Trims trailing whitespace from each line
// - Ensures consistent line endings
// - Trims trailing newlines
func normalizeContent(content []byte) string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	result := strings.Join(lines, "\n")
	return strings.TrimRight(result, "\n")
}

// UpdateArchive updates a txtar archive with new generated content.
// Used for golden file updates with -update flag.
func UpdateArchive(ar *txtar.Archive, got map[string][]byte) *txtar.Archive {
	result := &txtar.Archive{
		Comment: ar.Comment,
	}

	for _, f := range ar.Files {
		if f.Name == "input.txtpb" {
			result.Files = append(result.Files, f)
			break
		}
	}

	var wantFiles []string
	for name := range got {
		wantFiles = append(wantFiles, name)
	}
	sort.Strings(wantFiles)

	for _, name := range wantFiles {
		content := got[name]
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content = append(content, '\n')
		}
		result.Files = append(result.Files, txtar.File{
			Name: "want/" + name,
			Data: content,
		})
	}

	return result
}

// FormatArchive serializes an archive.
func FormatArchive(ar *txtar.Archive) []byte {
	return txtar.Format(ar)
}

// LoadTestCases loads all txtar test cases from a directory.
func LoadTestCases(t *testing.T, dir string) []*Case {
	t.Helper()

	pattern := filepath.Join(dir, "*.txtar")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %q: %v", pattern, err)
	}

	if len(files) == 0 {
		t.Fatalf("no txtar files found in %q", dir)
	}

	var cases []*Case
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatalf("parse %q: %v", file, err)
		}

		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		c, err := ParseCase(name, ar)
		if err != nil {
			t.Fatalf("parse case %q: %v", name, err)
		}

		cases = append(cases, c)
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})

	return cases
}

// ParseFiles decodes a FileDescriptorSet in protobuf text format and returns
// its files. It fails the test on malformed input.
func ParseFiles(t testing.TB, text string) []*descriptorpb.FileDescriptorProto {
	t.Helper()

	set := &descriptorpb.FileDescriptorSet{}
	if err := prototext.Unmarshal([]byte(text), set); err != nil {
		t.Fatalf("parse descriptor set: %v", err)
	}
	return set.GetFile()
}

// NewRequest builds a request for the files of a text FileDescriptorSet.
// Without generate, every file is requested.
func NewRequest(t testing.TB, text string, generate ...string) *pluginpb.CodeGeneratorRequest {
	t.Helper()

	files := ParseFiles(t, text)
	if len(generate) == 0 {
		for _, f := range files {
			generate = append(generate, f.GetName())
		}
	}
	return &pluginpb.CodeGeneratorRequest{
		FileToGenerate: generate,
		ProtoFile:      files,
	}
}
