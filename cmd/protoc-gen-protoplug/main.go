// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command protoc-gen-protoplug is a protoc plugin running one of the
// embedded generators.
//
// Usage:
//
//	protoc --plugin=protoc-gen-es=protoc-gen-protoplug --es_out=gen --es_opt=target=ts foo.proto
//	protoc-gen-protoplug generate --config protoplug.yaml
//	protoc-gen-protoplug list
//	protoc-gen-protoplug version
//
// Without a subcommand it reads a CodeGeneratorRequest from stdin and writes
// the CodeGeneratorResponse to stdout. The generator is picked with
// --generator, the PROTOPLUG_GENERATOR environment variable or the
// executable name: a binary installed as "protoc-gen-es" runs "es".
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/albertocavalcante/protoplug/generator"
	"github.com/albertocavalcante/protoplug/internal/config"
	"github.com/albertocavalcante/protoplug/internal/logging"
	"github.com/albertocavalcante/protoplug/internal/plugin"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const envGenerator = "PROTOPLUG_GENERATOR"

type globalFlags struct {
	generator string
	verbose   bool
	logJSON   bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if hints := errors.FlattenHints(err); hints != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hints)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "protoc-gen-protoplug",
		Short: "protoc plugin for TypeScript and JavaScript code generators",
		Long: `protoc-gen-protoplug runs a code generator as a protoc plugin.

Without a subcommand it reads a CodeGeneratorRequest from stdin and writes
the CodeGeneratorResponse to stdout, which is what protoc expects.

Examples:
  protoc --plugin=protoc-gen-es=$(which protoc-gen-protoplug) --es_out=gen foo.proto
  protoc-gen-protoplug generate --config protoplug.yaml
  protoc-gen-protoplug list`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := g.lookup(os.Args[0])
			if err != nil {
				return err
			}
			opts := plugin.Options{Generator: gen, Logger: g.logger()}
			return plugin.Run(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().StringVarP(&g.generator, "generator", "g", "", "Generator to run (default: from $"+envGenerator+", the executable name or \"es\")")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug messages to stderr")
	root.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "Log in JSON")

	root.AddCommand(newGenerateCmd(g), newListCmd(), newVersionCmd())
	return root
}

func (g *globalFlags) logger() *zap.Logger {
	return logging.New(logging.Options{Verbose: g.verbose, JSON: g.logJSON})
}

// lookup resolves the generator to run. argv0 is the executable path.
func (g *globalFlags) lookup(argv0 string) (generator.Generator, error) {
	return generator.Lookup(generatorName(g.generator, os.Getenv(envGenerator), argv0))
}

// generatorName picks the first of flag, env and the executable suffix that
// is set. The executable suffix only counts if it names a registered
// generator, so "protoc-gen-protoplug" itself falls back to the default.
func generatorName(flag, env, argv0 string) string {
	if flag != "" {
		return flag
	}
	if env != "" {
		return env
	}
	base := strings.TrimSuffix(filepath.Base(argv0), ".exe")
	if name, ok := strings.CutPrefix(base, "protoc-gen-"); ok {
		if _, found := generator.Get(name); found {
			return name
		}
	}
	return config.DefaultGenerator
}

func newGenerateCmd(g *globalFlags) *cobra.Command {
	var (
		configPath string
		input      string
		out        string
		dryRun     bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code from a FileDescriptorSet without protoc",
		Long: `Generate code from a binary FileDescriptorSet described by a YAML config.

The set must include imports:
  protoc --descriptor_set_out=set.binpb --include_imports foo.proto`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := &config.Config{Generator: config.DefaultGenerator, Out: "."}
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			if input != "" {
				cfg.Input = input
			}
			if out != "" {
				cfg.Out = out
			}
			if g.generator != "" {
				cfg.Generator = g.generator
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runGenerate(cmd, cfg, g.logger(), dryRun)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Binary FileDescriptorSet (overrides the config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (overrides the config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print file names instead of writing files")
	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, log *zap.Logger, dryRun bool) error {
	gen, err := generator.Lookup(cfg.Generator)
	if err != nil {
		return err
	}
	req, err := buildRequest(cfg)
	if err != nil {
		return err
	}

	resp := plugin.Generate(cmd.Context(), plugin.Options{Generator: gen, Logger: log}, req)
	if resp.Error != nil {
		return errors.Newf("%s: %s", cfg.Generator, resp.GetError())
	}

	for _, f := range resp.GetFile() {
		if dryRun {
			fmt.Fprintln(cmd.OutOrStdout(), f.GetName())
			continue
		}
		if err := writeFile(cfg.Out, f); err != nil {
			return err
		}
		log.Info("wrote file", zap.String(logging.FieldFile, filepath.Join(cfg.Out, f.GetName())))
	}
	return nil
}

func buildRequest(cfg *config.Config) (*pluginpb.CodeGeneratorRequest, error) {
	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	set := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(data, set); err != nil {
		return nil, errors.Wrapf(err, "decode %s", cfg.Input)
	}

	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: cfg.Files,
		ProtoFile:      set.GetFile(),
	}
	if p := cfg.PluginParameter(); p != "" {
		req.Parameter = proto.String(p)
	}
	if len(req.FileToGenerate) == 0 {
		for _, f := range set.GetFile() {
			req.FileToGenerate = append(req.FileToGenerate, f.GetName())
		}
	}
	return req, nil
}

func writeFile(dir string, f *pluginpb.CodeGeneratorResponse_File) error {
	name := filepath.FromSlash(f.GetName())
	if !filepath.IsLocal(name) {
		return errors.Newf("refusing to write %q outside of the output directory", f.GetName())
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	if err := os.WriteFile(path, []byte(f.GetContent()), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the embedded generators",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, gen := range generator.All() {
				meta := gen.Metadata()
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-8s %s\n", meta.Name, meta.Version, meta.Description)
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "protoc-gen-protoplug %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
