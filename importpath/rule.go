// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package importpath

import (
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/cockroachdb/errors"
)

// Rule rewrites relative specifiers matching Pattern to the package-style
// Target. Pattern is a glob over canonical paths, which always end in ".js",
// where "**" matches any number of directories, e.g. "./google/protobuf/**".
type Rule struct {
	Pattern string
	Target  string
}

// ParseRule parses "pattern:target".
func ParseRule(s string) (Rule, error) {
	pattern, target, ok := strings.Cut(s, ":")
	if !ok || pattern == "" || target == "" {
		return Rule{}, errors.Newf("rewrite rule %q: want pattern:target", s)
	}
	r := Rule{Pattern: pattern, Target: target}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// Validate checks that the pattern compiles and the target is not relative.
// Relative targets could be matched again by the same rule. Patterns for
// ".ts" files are rejected: they would only match paths the extension
// policy already produced, never a canonical path.
func (r Rule) Validate() error {
	if IsRelative(r.Target) || strings.HasPrefix(r.Target, "/") {
		return errors.Newf("rewrite rule %q: target %q must be a package name, not a path", r.String(), r.Target)
	}
	if strings.HasSuffix(r.Pattern, ".ts") {
		return errors.WithHint(
			errors.Newf("rewrite rule %q: pattern must match canonical .js paths", r.String()),
			`write "./foo/*_pb.js" for the file generated as "foo/x_pb.ts"`)
	}
	if _, err := doublestar.Match(r.Pattern, ""); err != nil {
		return errors.Wrapf(err, "rewrite rule %q", r.String())
	}
	return nil
}

// Match reports whether the canonical path p matches the rule pattern.
func (r Rule) Match(p string) bool {
	ok, err := doublestar.Match(r.Pattern, p)
	return err == nil && ok
}

func (r Rule) apply(p string) string {
	rest := strings.TrimPrefix(strings.TrimPrefix(p, "./"), "../")
	return strings.TrimRight(r.Target, "/") + "/" + rest
}

func (r Rule) String() string {
	return r.Pattern + ":" + r.Target
}
