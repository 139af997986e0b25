// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package es

import (
	"github.com/albertocavalcante/protoplug/generator"
	"github.com/albertocavalcante/protoplug/model"
)

// generateDTS writes the declaration file that accompanies the js target.
func generateDTS(s *generator.Schema, file *model.File) error {
	p, err := newPrinter(s, file.Name+"_pb"+generator.TargetDTS.Suffix())
	if err != nil {
		return err
	}
	p.preamble(file)
	for _, d := range declarations(file) {
		if d.enum != nil {
			p.dtsEnum(d.enum)
		} else {
			p.dtsMessage(d.message)
		}
	}
	return p.err
}

func (p *printer) dtsEnum(e *model.Enum) {
	p.doc("", e.Desc, "@generated from enum "+e.TypeName())
	p.print("export declare enum ", e, " {")
	values := e.Desc.Values()
	for i, v := range e.Values {
		if i > 0 {
			p.print()
		}
		p.doc("  ", values.Get(i), "@generated from enum value: "+v.Declaration())
		p.print("  ", v.LocalName, " = ", v.Number, ",")
	}
	p.print("}")
	p.print()
}

func (p *printer) dtsMessage(m *model.Message) {
	rt := p.runtime(m.File)
	typ := func(t model.Type) any { return p.typeRef(t) }
	plain := p.s.Runtime.PlainMessage

	p.doc("", m.Desc, "@generated from message "+m.TypeName())
	p.print("export declare class ", m, " extends ", p.s.Runtime.Message, "<", m, "> {")
	for _, f := range m.Fields {
		p.doc("  ", f.Desc, "@generated from field: "+f.Declaration())
		sep := ": "
		if optionalProperty(f) {
			sep = "?: "
		}
		decl := append([]any{"  ", f.LocalName, sep}, fieldTSType(f, typ)...)
		p.print(append(decl, ";")...)
		p.print()
	}
	p.print("  constructor(data?: ", p.s.Runtime.PartialMessage, "<", m, ">);")
	p.print()
	p.print("  static readonly runtime: typeof ", rt, ";")
	p.print(`  static readonly typeName = "`, m.TypeName(), `";`)
	p.print("  static readonly fields: ", p.s.Runtime.FieldList, ";")
	p.print()
	p.print("  static fromBinary(bytes: Uint8Array, options?: Partial<", p.s.Runtime.BinaryReadOptions, ">): ", m, ";")
	p.print()
	p.print("  static fromJson(jsonValue: ", p.s.Runtime.JsonValue, ", options?: Partial<", p.s.Runtime.JsonReadOptions, ">): ", m, ";")
	p.print()
	p.print("  static fromJsonString(jsonString: string, options?: Partial<", p.s.Runtime.JsonReadOptions, ">): ", m, ";")
	p.print()
	p.print("  static equals(a: ", m, " | ", plain, "<", m, "> | undefined, b: ", m, " | ", plain, "<", m, "> | undefined): boolean;")
	p.print("}")
	p.print()
}
