// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/albertocavalcante/protoplug/model"
)

// syntaxFieldNumber is google.protobuf.FileDescriptorProto.syntax.
const syntaxFieldNumber = 12

// banner builds preambles for one run.
type banner struct {
	info      PluginInfo
	parameter string
	tsNocheck bool
}

// forFile returns the preamble for a file generated from file. Detached
// comments above the syntax declaration (usually a license) are kept.
func (b banner) forFile(file *model.File) string {
	var sb strings.Builder

	for _, c := range syntaxComments(file) {
		for _, line := range strings.Split(strings.TrimSuffix(c, "\n"), "\n") {
			sb.WriteString("//" + line + "\n")
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "// @generated by %s %s", b.info.Name, b.info.Version)
	if b.parameter != "" {
		fmt.Fprintf(&sb, " with parameter %q", b.parameter)
	}
	sb.WriteString("\n")

	if file.Package != "" {
		fmt.Fprintf(&sb, "// @generated from file %s (package %s, syntax %s)\n", file.ProtoName, file.Package, file.Syntax)
	} else {
		fmt.Fprintf(&sb, "// @generated from file %s (syntax %s)\n", file.ProtoName, file.Syntax)
	}

	sb.WriteString("/* eslint-disable */\n")
	if b.tsNocheck {
		sb.WriteString("// @ts-nocheck\n")
	}
	return sb.String()
}

func syntaxComments(file *model.File) []string {
	if file.Desc == nil {
		return nil
	}
	loc := file.Desc.SourceLocations().ByPath(protoreflect.SourcePath{syntaxFieldNumber})
	return loc.LeadingDetachedComments
}
