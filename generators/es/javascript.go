// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package es

import (
	"github.com/albertocavalcante/protoplug/generator"
	"github.com/albertocavalcante/protoplug/importpath"
	"github.com/albertocavalcante/protoplug/model"
)

func generateJS(s *generator.Schema, file *model.File, style importpath.Style) error {
	p, err := newPrinter(s, file.Name+"_pb"+generator.TargetJS.Suffix())
	if err != nil {
		return err
	}
	// CommonJS files assign exports after each declaration.
	export := "export const "
	if style == importpath.StyleLegacyCommonJS {
		export = "const "
	}

	p.preamble(file)
	for _, d := range declarations(file) {
		var t model.Type
		if d.enum != nil {
			p.jsEnum(d.enum, export)
			t = d.enum
		} else {
			p.jsMessage(d.message, export)
			t = d.message
		}
		if style == importpath.StyleLegacyCommonJS {
			p.print()
			p.print("exports.", t, " = ", t, ";")
		}
		p.print()
	}
	return p.err
}

func (p *printer) jsEnum(e *model.Enum, export string) {
	p.doc("", e.Desc, "@generated from enum "+e.TypeName())
	p.print(export, e, " = /*@__PURE__*/ ", p.runtime(e.File), ".makeEnum(")
	p.print(`  "`, e.TypeName(), `",`)
	p.print("  [")
	for _, v := range e.Values {
		if v.LocalName == v.Name {
			p.print(`    {no: `, v.Number, `, name: "`, v.Name, `"},`)
			continue
		}
		p.print(`    {no: `, v.Number, `, name: "`, v.Name, `", localName: "`, v.LocalName, `"},`)
	}
	p.print("  ],")
	if e.Parent != nil {
		p.print(`  {localName: "`, e.LocalName(), `"},`)
	}
	p.print(");")
}

func (p *printer) jsMessage(m *model.Message, export string) {
	p.doc("", m.Desc, "@generated from message "+m.TypeName())
	p.print(export, m, " = /*@__PURE__*/ ", p.runtime(m.File), ".makeMessageType(")
	p.print(`  "`, m.TypeName(), `",`)
	p.print("  () => [")
	for _, f := range m.Fields {
		p.print(append([]any{"    "}, p.fieldInfo(f)...)...)
	}
	p.print("  ],")
	if m.Parent != nil {
		p.print(`  {localName: "`, m.LocalName(), `"},`)
	}
	p.print(");")
}
