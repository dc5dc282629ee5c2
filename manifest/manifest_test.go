/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/config"
	"dirpx.dev/refid/manifest"
	"dirpx.dev/refid/resolver"
	"dirpx.dev/refid/strategy"
)

// doc is the manifest used by most tests. It exercises every member
// kind, cross-unit references, inheritance, and a generic definition.
const doc = `
[[units]]
name = "core"

[[units.types]]
name = "core.Object"

[[units.types]]
name = "core.Int32"

[[units.types]]
name = "core.String"

[[units.types]]
name = "core.Buffer"
extends = "core.Object"

[[units.types.fields]]
name = "length"
type = "core.Int32"

[[units.types.events]]
name = "resized"
type = "core.Object"

[[units.types.properties]]
name = "Item"
type = "core.String"
index = ["core.Int32"]

[[units.types.constructors]]
params = ["core.Int32"]

[[units.types.methods]]
name = "Clear"

[[units.types.methods]]
name = "Map"
arity = 1
params = ["` + "``0" + `", "core.Int32"]

[[units.types.fields]]
name = "tags"
type = "collections.List` + "`1" + `[[core.String]]"

[[units]]
name = "collections"

[[units.types]]
name = "collections.List"
type_params = ["T"]
`

func newSession(src apis.Source) apis.Session {
	return resolver.New(
		config.DefaultConfig(),
		src,
		strategy.NewExactLookup(),
		strategy.NewScanLookup(),
	)
}

func TestParse_DeclaresUnitsAndTypes(t *testing.T) {
	uni, err := manifest.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	units := uni.Units()
	if len(units) != 2 {
		t.Fatalf("units: got %d want 2", len(units))
	}
	if units[0].Name() != "core" || units[1].Name() != "collections" {
		t.Fatalf("unit names: %q %q", units[0].Name(), units[1].Name())
	}

	if _, ok := units[0].TypeByName("core.Buffer"); !ok {
		t.Fatalf("core.Buffer not declared")
	}
	if _, ok := units[1].TypeByName("collections.List`1"); !ok {
		t.Fatalf("generic definition not declared under its arity name")
	}
}

func TestParse_LinksBaseAndMembers(t *testing.T) {
	uni, err := manifest.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ses := newSession(uni)

	buf, err := ses.ResolveType("core.Buffer")
	if err != nil {
		t.Fatalf("ResolveType(core.Buffer): %v", err)
	}
	if buf.Base() == nil || buf.Base().FullName() != "core.Object" {
		t.Fatalf("extends not linked: %v", buf.Base())
	}

	// One member per declared spec, in declaration order per kind.
	for _, id := range []string{
		"F:core.Buffer:length",
		"E:core.Buffer:resized",
		"P:core.Buffer:Item(core.Int32)",
		"C:core.Buffer:i(core.Int32)",
		"M:core.Buffer:Clear",
		"M:core.Buffer:Map``1(``0,core.Int32)",
		"F:core.Buffer:tags",
	} {
		m, err := ses.ResolveMember(id)
		if err != nil {
			t.Fatalf("ResolveMember(%q): %v", id, err)
		}
		// The canonical encoding must reproduce the identifier.
		back, err := ses.EncodeMember(m)
		if err != nil {
			t.Fatalf("EncodeMember after %q: %v", id, err)
		}
		if back != id {
			t.Fatalf("round trip drift: %q became %q", id, back)
		}
	}

	// The constructed-generic reference used by the tags field must
	// resolve to a List instantiation, not the bare definition.
	ft, err := ses.ResolveType("collections.List`1[[core.String]]")
	if err != nil {
		t.Fatalf("ResolveType(constructed List): %v", err)
	}
	if ft.IsGenericDefinition() {
		t.Fatalf("constructed reference resolved to an open definition")
	}
	args := ft.GenericArgs()
	if len(args) != 1 || args[0].FullName() != "core.String" {
		t.Fatalf("generic args: %v", args)
	}
}

func TestParse_GenericMethodPlaceholders(t *testing.T) {
	uni, err := manifest.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ses := newSession(uni)

	m, err := ses.ResolveMember("M:core.Buffer:Map``1(``0,core.Int32)")
	if err != nil {
		t.Fatalf("resolve open generic method: %v", err)
	}

	inst, err := m.Instantiate([]apis.Type{mustType(t, ses, "core.String")})
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	id, err := ses.EncodeMember(inst)
	if err != nil {
		t.Fatalf("EncodeMember(instance): %v", err)
	}
	want := "M:core.Buffer:Map``1[[core.String]](core.String,core.Int32)"
	if id != want {
		t.Fatalf("instance id: got %q want %q", id, want)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refid-manifest.toml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	uni, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(uni.Units()) != 2 {
		t.Fatalf("units: got %d want 2", len(uni.Units()))
	}

	if _, err := manifest.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("Load of a missing file succeeded")
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "bad toml",
			doc:  `[[units]` + "\n",
			want: "manifest:",
		},
		{
			name: "unnamed type",
			doc: `
[[units]]
name = "core"
[[units.types]]
extends = "core.Object"
`,
			want: "unnamed type",
		},
		{
			name: "unresolvable extends",
			doc: `
[[units]]
name = "core"
[[units.types]]
name = "core.Buffer"
extends = "core.Missing"
`,
			want: `extends "core.Missing"`,
		},
		{
			name: "unresolvable field type",
			doc: `
[[units]]
name = "core"
[[units.types]]
name = "core.Buffer"
[[units.types.fields]]
name = "length"
type = "core.Missing"
`,
			want: `references "core.Missing"`,
		},
		{
			name: "placeholder out of range",
			doc: `
[[units]]
name = "core"
[[units.types]]
name = "core.Buffer"
[[units.types.methods]]
name = "Map"
arity = 1
params = ["` + "``3" + `"]
`,
			want: "out of range",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := manifest.Parse([]byte(tc.doc))
			if err == nil {
				t.Fatalf("Parse succeeded, want error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}

	// Unresolvable references surface the resolver sentinel.
	_, err := manifest.Parse([]byte(`
[[units]]
name = "core"
[[units.types]]
name = "core.Buffer"
extends = "core.Missing"
`))
	if !errors.Is(err, apis.ErrNotFound) {
		t.Fatalf("unresolvable reference: got %v, want ErrNotFound in chain", err)
	}
}

func mustType(t *testing.T, ses apis.Session, id string) apis.Type {
	t.Helper()
	tt, err := ses.ResolveType(id)
	if err != nil {
		t.Fatalf("ResolveType(%q): %v", id, err)
	}
	return tt
}
