// SPDX-License-Identifier: MIT

package importpath

import (
	"testing"

	"github.com/albertocavalcante/protoplug/model"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "a_pb.ts", want: "./a_pb.js"},
		{input: "a_pb.js", want: "./a_pb.js"},
		{input: "a_pb.d.ts", want: "./a_pb.js"},
		{input: "foo/bar_pb.ts", want: "./foo/bar_pb.js"},
		{input: "./foo/bar_pb.ts", want: "./foo/bar_pb.js"},
		{input: "registry.json", want: "./registry.json"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Derive(tt.input); got != tt.want {
				t.Errorf("Derive(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestForFile(t *testing.T) {
	wkt := &model.File{Name: "google/protobuf/timestamp", ProtoName: "google/protobuf/timestamp.proto"}
	user := &model.File{Name: "foo/bar", ProtoName: "foo/bar.proto"}

	tests := []struct {
		name      string
		file      *model.File
		bootstrap bool
		generate  []*model.File
		want      string
	}{
		{name: "user file", file: user, want: "./foo/bar_pb.js"},
		{name: "well-known from runtime", file: wkt, want: RuntimePackage},
		{name: "well-known bootstrapped", file: wkt, bootstrap: true, want: "./google/protobuf/timestamp_pb.js"},
		{name: "well-known generated", file: wkt, generate: []*model.File{wkt}, want: "./google/protobuf/timestamp_pb.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForFile(tt.file, tt.bootstrap, tt.generate); got != tt.want {
				t.Errorf("ForFile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewrite(t *testing.T) {
	wktRule := Rule{Pattern: "./google/protobuf/**", Target: "@scope/wkt"}

	tests := []struct {
		name  string
		input string
		rules []Rule
		ext   Extension
		want  string
	}{
		{name: "keep js", input: "./b_pb.js", ext: ExtensionJS, want: "./b_pb.js"},
		{name: "ts extension", input: "./b_pb.js", ext: ExtensionTS, want: "./b_pb.ts"},
		{name: "no extension", input: "./b_pb.js", ext: ExtensionNone, want: "./b_pb"},
		{name: "package untouched", input: RuntimePackage, ext: ExtensionTS, want: RuntimePackage},
		{name: "rule match", input: "./google/protobuf/timestamp_pb.js", rules: []Rule{wktRule}, ext: ExtensionTS, want: "@scope/wkt/google/protobuf/timestamp_pb.js"},
		{name: "rule miss", input: "./foo/bar_pb.js", rules: []Rule{wktRule}, ext: ExtensionNone, want: "./foo/bar_pb"},
		{name: "first rule wins", input: "./foo/bar_pb.js", rules: []Rule{{Pattern: "./foo/*", Target: "one/"}, {Pattern: "./**", Target: "two"}}, want: "one/foo/bar_pb.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rewrite(tt.input, tt.rules, tt.ext)
			if got != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := Rewrite(got, tt.rules, tt.ext); again != got {
				t.Errorf("Rewrite is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestRelativize(t *testing.T) {
	tests := []struct {
		name     string
		importer string
		target   string
		want     string
		wantOK   bool
	}{
		{name: "same dir", importer: "./a_pb.js", target: "./b_pb.js", want: "./b_pb.js", wantOK: true},
		{name: "self", importer: "./a_pb.js", target: "./a_pb.js", wantOK: false},
		{name: "self unnormalized", importer: "./x/../a_pb.js", target: "./a_pb.js", wantOK: false},
		{name: "into subdir", importer: "./a_pb.js", target: "./foo/b_pb.js", want: "./foo/b_pb.js", wantOK: true},
		{name: "up one", importer: "./foo/a_pb.js", target: "./b_pb.js", want: "../b_pb.js", wantOK: true},
		{name: "sibling dir", importer: "./foo/a_pb.js", target: "./bar/b_pb.js", want: "../bar/b_pb.js", wantOK: true},
		{name: "shared prefix", importer: "./x/y/a_pb.js", target: "./x/b_pb.js", want: "../b_pb.js", wantOK: true},
		{name: "dot segments", importer: "./foo/./a_pb.js", target: "./foo/sub/../b_pb.js", want: "./b_pb.js", wantOK: true},
		{name: "backslashes", importer: "./foo\\a_pb.js", target: "./foo/b_pb.js", want: "./b_pb.js", wantOK: true},
		{name: "package passthrough", importer: "./foo/a_pb.js", target: "@scope/pkg", want: "@scope/pkg", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Relativize(tt.importer, tt.target)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Relativize(%q, %q) = %q, %v; want %q, %v", tt.importer, tt.target, got, ok, tt.want, tt.wantOK)
			}
			if !ok {
				return
			}
			if again, _ := Relativize(tt.importer, tt.target); again != got {
				t.Errorf("Relativize is not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		importer string
		from     string
		opts     Options
		want     string
		wantOK   bool
	}{
		{
			name:     "module ts",
			importer: "./a_pb.js", from: "./b_pb.js",
			opts: Options{Style: StyleModule, Extension: ExtensionTS},
			want: "./b_pb.ts", wantOK: true,
		},
		{
			name:     "legacy strips extension",
			importer: "./a_pb.js", from: "./b_pb.js",
			opts: Options{Style: StyleLegacyCommonJS, Extension: ExtensionTS},
			want: "./b_pb", wantOK: true,
		},
		{
			name:     "self import",
			importer: "./a_pb.js", from: "./a_pb.js",
			opts:   Options{Style: StyleModule, Extension: ExtensionJS},
			wantOK: false,
		},
		{
			name:     "runtime package",
			importer: "./foo/a_pb.js", from: RuntimePackage,
			opts: Options{Style: StyleLegacyCommonJS},
			want: RuntimePackage, wantOK: true,
		},
		{
			name:     "rewritten then not relativized",
			importer: "./foo/a_pb.js", from: "./google/protobuf/any_pb.js",
			opts: Options{Style: StyleModule, Rules: []Rule{{Pattern: "./google/**", Target: "@g/wkt"}}},
			want: "@g/wkt/google/protobuf/any_pb.js", wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.importer, tt.from, tt.opts)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve_StyleOnlyChangesExtension(t *testing.T) {
	pairs := [][2]string{
		{"./a_pb.js", "./b_pb.js"},
		{"./foo/a_pb.js", "./bar/b_pb.js"},
		{"./x/y/a_pb.js", "./x/b_pb.js"},
	}
	for _, ext := range []Extension{ExtensionJS, ExtensionTS, ExtensionNone} {
		for _, p := range pairs {
			module, _ := Resolve(p[0], p[1], Options{Style: StyleModule, Extension: ext})
			legacy, _ := Resolve(p[0], p[1], Options{Style: StyleLegacyCommonJS, Extension: ext})
			if StripExtension(module) != legacy {
				t.Errorf("%v ext=%s: module %q and legacy %q differ beyond extension", p, ext, module, legacy)
			}
			back, _ := Resolve(p[0], p[1], Options{Style: StyleModule, Extension: ext})
			if back != module {
				t.Errorf("%v ext=%s: module resolution changed from %q to %q", p, ext, module, back)
			}
		}
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		input   string
		want    Rule
		wantErr bool
	}{
		{input: "./foo/**:@scope/foo", want: Rule{Pattern: "./foo/**", Target: "@scope/foo"}},
		{input: "./foo/**", wantErr: true},
		{input: ":target", wantErr: true},
		{input: "./foo/**:./bar", wantErr: true},
		{input: "./foo/**:/abs", wantErr: true},
		{input: "./**/*.ts:@scope/all", wantErr: true},
		{input: "./**/*_pb.d.ts:@scope/all", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRule(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRule(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRule(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRewrite_IdempotentForEveryExtension(t *testing.T) {
	rules := []Rule{{Pattern: "./foo/**", Target: "@scope/foo"}}
	for _, ext := range []Extension{ExtensionJS, ExtensionTS, ExtensionNone} {
		for _, p := range []string{"./foo/a_pb.js", "./bar/b_pb.js", "@bufbuild/protobuf"} {
			once := Rewrite(p, rules, ext)
			if twice := Rewrite(once, rules, ext); twice != once {
				t.Errorf("Rewrite(Rewrite(%q, %s)) = %q, want %q", p, ext, twice, once)
			}
		}
	}
	// An extension-less path produced by the "none" policy is not a
	// canonical path and stays relative.
	if got := Rewrite("./bar/b_pb", rules, ExtensionNone); got != "./bar/b_pb" {
		t.Errorf("Rewrite(./bar/b_pb) = %q", got)
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"./b_pb.js", "./b_pb.js"},
		{"./x/../b_pb.js", "./b_pb.js"},
		{"./a//b/./c_pb.js", "./a/b/c_pb.js"},
		{"./win\\d_pb.js", "./win/d_pb.js"},
		{"../up_pb.js", "../up_pb.js"},
		{"@bufbuild/protobuf", "@bufbuild/protobuf"},
	}
	for _, tt := range tests {
		if got := Canonical(tt.input); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
