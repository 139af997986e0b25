// SPDX-License-Identifier: MIT

// Package e2e provides end-to-end tests for the protoc-gen-protoplug binary.
package e2e

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/tools/txtar"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/albertocavalcante/protoplug/internal/testutil"
)

var (
	binary string // path to built protoc-gen-protoplug binary
	update = flag.Bool("update", false, "update golden files")
)

func TestMain(m *testing.M) {
	flag.Parse()

	// Build the binary to a temp location.
	tmpDir, err := os.MkdirTemp("", "protoplug-e2e-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	binary = filepath.Join(tmpDir, "protoc-gen-protoplug")
	if err := buildBinary(context.Background(), binary, "protoplug_full"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build binary: %v\n", err)
		os.RemoveAll(tmpDir)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// buildBinary builds the plugin binary to the specified path.
func buildBinary(ctx context.Context, outputPath string, tags ...string) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	args := []string{"build", "-o", outputPath}
	if len(tags) > 0 {
		args = append(args, "-tags", strings.Join(tags, ","))
	}
	cmd := exec.CommandContext(ctx, "go", append(args, "./cmd/protoc-gen-protoplug")...)

	moduleRoot, err := findModuleRoot()
	if err != nil {
		return fmt.Errorf("find module root: %w", err)
	}
	cmd.Dir = moduleRoot

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w: %s", err, stderr.String())
	}
	return nil
}

// findModuleRoot finds the root of the Go module by looking for go.mod.
func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}

func TestE2E(t *testing.T) {
	for _, tc := range testutil.LoadTestCases(t, "testdata") {
		t.Run(tc.Name, func(t *testing.T) {
			runTestCase(t, tc)
		})
	}
}

// runTestCase pipes the request of tc into the binary, the way protoc
// does, and compares the files of the response.
func runTestCase(t *testing.T, tc *testutil.Case) {
	t.Helper()

	req, err := tc.Request()
	if err != nil {
		t.Fatal(err)
	}
	in, err := proto.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	args := parseFlags(tc.Description)
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = bytes.NewReader(in)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Logf("command: %s %s", binary, strings.Join(args, " "))
		t.Logf("stderr: %s", stderr.String())
		t.Fatalf("command failed: %v", err)
	}

	resp := &pluginpb.CodeGeneratorResponse{}
	if err := proto.Unmarshal(stdout.Bytes(), resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("plugin error: %s", resp.GetError())
	}
	if resp.GetSupportedFeatures() != uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL) {
		t.Errorf("supported features = %d, want proto3 optional", resp.GetSupportedFeatures())
	}

	got := make(map[string][]byte)
	for _, f := range resp.GetFile() {
		got[f.GetName()] = []byte(f.GetContent())
	}

	if *update {
		file := filepath.Join("testdata", tc.Name+".txtar")
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatalf("parse txtar: %v", err)
		}
		if err := os.WriteFile(file, testutil.FormatArchive(testutil.UpdateArchive(ar, got)), 0o644); err != nil {
			t.Fatalf("write updated file: %v", err)
		}
		t.Logf("updated %s", file)
		return
	}

	testutil.Compare(t, tc.Want, got)
}

// parseFlags extracts command line flags from a "Flags: ..." line in the
// description. Flags are space-separated to match CLI conventions.
func parseFlags(description string) []string {
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if flags, ok := strings.CutPrefix(line, "Flags:"); ok {
			return strings.Fields(flags)
		}
	}
	return nil
}
