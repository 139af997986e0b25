// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"strings"
	"unicode"
)

// reservedIdentifiers cannot be used as top-level names in generated code.
var reservedIdentifiers = map[string]bool{
	// ECMAScript keywords and future reserved words
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true, "let": true, "static": true,
	"implements": true, "interface": true, "package": true, "private": true,
	"protected": true, "public": true, "await": true,

	// TypeScript contextual keywords and primitive types
	"as": true, "any": true, "boolean": true, "constructor": true,
	"declare": true, "get": true, "module": true, "require": true,
	"number": true, "set": true, "string": true, "symbol": true,
	"type": true, "from": true, "of": true, "bigint": true,

	// Globals that generated code relies on
	"Array": true, "Boolean": true, "Date": true, "Error": true,
	"Map": true, "Number": true, "Object": true, "Promise": true,
	"Set": true, "String": true, "Uint8Array": true, "globalThis": true,
	"exports": true,
}

// reservedObjectProperties clash with properties of generated message objects.
var reservedObjectProperties = map[string]bool{
	"constructor": true, "toString": true, "toJSON": true, "valueOf": true,
	"__proto__": true,
	"getType": true, "clone": true, "equals": true,
	"fromBinary": true, "fromJson": true, "fromJsonString": true,
	"toBinary": true, "toJson": true, "toJsonString": true, "toObject": true,
}

func safeIdentifier(name string) string {
	if reservedIdentifiers[name] {
		return name + "$"
	}
	return name
}

func safeObjectProperty(name string) string {
	if reservedObjectProperties[name] {
		return name + "$"
	}
	return name
}

// typeLocalName returns the exported identifier for a type: the package is
// dropped and nesting is joined with "_", so "pkg.Outer.Inner" becomes
// "Outer_Inner".
func typeLocalName(pkg, fullName string) string {
	name := fullName
	if pkg != "" {
		name = strings.TrimPrefix(name, pkg+".")
	}
	return safeIdentifier(strings.ReplaceAll(name, ".", "_"))
}

// protoCamelCase converts a proto field name to lower camel case the way
// protoc derives JSON names: underscores are dropped and the following
// letter is uppercased. Digits reset the uppercase flag.
func protoCamelCase(snake string) string {
	var b strings.Builder
	capNext := false
	for _, r := range snake {
		switch {
		case r == '_':
			capNext = true
		case unicode.IsDigit(r):
			b.WriteRune(r)
			capNext = false
		default:
			if capNext {
				r = unicode.ToUpper(r)
				capNext = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// camelToSnake converts "FooBar" to "foo_bar".
func camelToSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// sharedEnumPrefix returns the "enum_name_" prefix shared by all values of an
// enum, compared case-insensitively. It returns "" when a value does not
// carry the prefix, or when stripping it would leave an empty name or a name
// starting with a digit.
func sharedEnumPrefix(enumName string, valueNames []string) string {
	prefix := camelToSnake(enumName) + "_"
	for _, name := range valueNames {
		if !strings.HasPrefix(strings.ToLower(name), prefix) {
			return ""
		}
		short := name[len(prefix):]
		if short == "" || unicode.IsDigit(rune(short[0])) {
			return ""
		}
	}
	return prefix
}
