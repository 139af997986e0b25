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

func generateTS(s *generator.Schema, file *model.File) error {
	p, err := newPrinter(s, file.Name+"_pb"+generator.TargetTS.Suffix())
	if err != nil {
		return err
	}
	p.preamble(file)
	for _, d := range declarations(file) {
		if d.enum != nil {
			p.tsEnum(d.enum)
		} else {
			p.tsMessage(d.message)
		}
	}
	return p.err
}

func (p *printer) tsEnum(e *model.Enum) {
	p.doc("", e.Desc, "@generated from enum "+e.TypeName())
	p.print("export enum ", e, " {")
	values := e.Desc.Values()
	for i, v := range e.Values {
		if i > 0 {
			p.print()
		}
		p.doc("  ", values.Get(i), "@generated from enum value: "+v.Declaration())
		p.print("  ", v.LocalName, " = ", v.Number, ",")
	}
	p.print("}")
	p.print("// Retrieve enum metadata with: ", p.runtime(e.File), ".getEnumType(", e, ")")
	p.print(p.runtime(e.File), ".util.setEnumType(", e, `, "`, e.TypeName(), `", [`)
	for _, v := range e.Values {
		p.print(`  { no: `, v.Number, `, name: "`, v.Name, `" },`)
	}
	p.print("]);")
	p.print()
}

func (p *printer) tsMessage(m *model.Message) {
	rt := p.runtime(m.File)
	value := func(t model.Type) any { return t }

	p.doc("", m.Desc, "@generated from message "+m.TypeName())
	p.print("export class ", m, " extends ", p.s.Runtime.Message, "<", m, "> {")
	for _, f := range m.Fields {
		p.doc("  ", f.Desc, "@generated from field: "+f.Declaration())
		decl := append([]any{"  ", f.LocalName}, p.tsProperty(f, value)...)
		p.print(decl...)
		p.print()
	}
	p.print("  constructor(data?: ", p.s.Runtime.PartialMessage, "<", m, ">) {")
	p.print("    super();")
	p.print("    ", rt, ".util.initPartial(data, this);")
	p.print("  }")
	p.print()
	p.print("  static readonly runtime: typeof ", rt, " = ", rt, ";")
	p.print(`  static readonly typeName = "`, m.TypeName(), `";`)
	p.print("  static readonly fields: ", p.s.Runtime.FieldList, " = ", rt, ".util.newFieldList(() => [")
	for _, f := range m.Fields {
		p.print(append([]any{"    "}, p.fieldInfo(f)...)...)
	}
	p.print("  ]);")
	p.print()
	p.print("  static fromBinary(bytes: Uint8Array, options?: Partial<", p.s.Runtime.BinaryReadOptions, ">): ", m, " {")
	p.print("    return new ", m, "().fromBinary(bytes, options);")
	p.print("  }")
	p.print()
	p.print("  static fromJson(jsonValue: ", p.s.Runtime.JsonValue, ", options?: Partial<", p.s.Runtime.JsonReadOptions, ">): ", m, " {")
	p.print("    return new ", m, "().fromJson(jsonValue, options);")
	p.print("  }")
	p.print()
	p.print("  static fromJsonString(jsonString: string, options?: Partial<", p.s.Runtime.JsonReadOptions, ">): ", m, " {")
	p.print("    return new ", m, "().fromJsonString(jsonString, options);")
	p.print("  }")
	p.print()
	p.print("  static equals(a: ", m, " | ", p.s.Runtime.PlainMessage, "<", m, "> | undefined, b: ", m, " | ", p.s.Runtime.PlainMessage, "<", m, "> | undefined): boolean {")
	p.print("    return ", rt, ".util.equals(", m, ", a, b);")
	p.print("  }")
	p.print("}")
	p.print()
}

// tsProperty returns the property declaration of a field after its name,
// with an initializer for fields that are set by default.
func (p *printer) tsProperty(f *model.Field, ref func(model.Type) any) []any {
	typ := fieldTSType(f, ref)
	if optionalProperty(f) {
		return append(append([]any{"?: "}, typ...), ";")
	}
	switch {
	case f.Repeated:
		return append(append([]any{": "}, typ...), " = [];")
	case f.Kind == model.FieldMap:
		return append(append([]any{": "}, typ...), " = {};")
	case f.Kind == model.FieldEnum:
		return []any{" = ", f.Enum, ".", f.Enum.Values[0].LocalName, ";"}
	case is64Bit(f.Scalar):
		return []any{" = ", p.s.Runtime.ProtoInt64, ".zero;"}
	default:
		return []any{" = ", scalarZero(f.Scalar), ";"}
	}
}
