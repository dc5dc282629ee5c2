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

// Package manifest loads a model universe from a TOML description.
//
// A manifest declares units, their types, and their members. Member and
// base type references are written as identifier strings and resolved
// against the universe itself, so a manifest can freely reference types
// across its own units:
//
//	[[units]]
//	name = "core"
//
//	[[units.types]]
//	name = "core.Int32"
//
//	[[units.types]]
//	name = "core.Buffer"
//	extends = "core.Object"
//
//	[[units.types.fields]]
//	name = "length"
//	type = "core.Int32"
package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/cache/policy"
	"dirpx.dev/refid/config"
	"dirpx.dev/refid/ident"
	"dirpx.dev/refid/resolver"
	"dirpx.dev/refid/strategy"
	"dirpx.dev/refid/typesys/model"
)

// File is the top-level manifest document.
type File struct {
	Units []UnitSpec `toml:"units"`
}

// UnitSpec declares one unit and its types.
type UnitSpec struct {
	Name  string     `toml:"name"`
	Types []TypeSpec `toml:"types"`
}

// TypeSpec declares one type. Name is the full name; the last dot
// separates namespace from simple name. TypeParams turns the type into
// a generic definition.
type TypeSpec struct {
	Name         string         `toml:"name"`
	Extends      string         `toml:"extends,omitempty"`
	TypeParams   []string       `toml:"type_params,omitempty"`
	Fields       []ValueSpec    `toml:"fields,omitempty"`
	Events       []ValueSpec    `toml:"events,omitempty"`
	Properties   []PropertySpec `toml:"properties,omitempty"`
	Constructors []CtorSpec     `toml:"constructors,omitempty"`
	Methods      []MethodSpec   `toml:"methods,omitempty"`
}

// ValueSpec declares a field or event.
type ValueSpec struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// PropertySpec declares a property, indexed when Index is non-empty.
type PropertySpec struct {
	Name  string   `toml:"name"`
	Type  string   `toml:"type"`
	Index []string `toml:"index,omitempty"`
}

// CtorSpec declares a constructor.
type CtorSpec struct {
	Static bool     `toml:"static,omitempty"`
	Params []string `toml:"params,omitempty"`
}

// MethodSpec declares a method. Arity above zero makes it generic; its
// parameter texts may reference the method's own placeholders ("``0").
type MethodSpec struct {
	Name   string   `toml:"name"`
	Arity  int      `toml:"arity,omitempty"`
	Params []string `toml:"params,omitempty"`
}

// Load reads and links a manifest file into a fresh universe.
func Load(path string) (*model.Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse links a manifest document into a fresh universe. Types are
// declared first, then member and base references are resolved against
// the universe through a regular session, so declaration order does not
// matter.
func Parse(data []byte) (*model.Universe, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	uni := model.NewUniverse()
	types := make(map[*TypeSpec]*model.Type)

	for ui := range f.Units {
		us := &f.Units[ui]
		unit := uni.NewUnit(us.Name)
		for ti := range us.Types {
			ts := &us.Types[ti]
			if ts.Name == "" {
				return nil, fmt.Errorf("manifest: unit %q declares an unnamed type", us.Name)
			}
			ns, simple := splitName(ts.Name)
			opts := []model.TypeOption{}
			if ns != "" {
				opts = append(opts, model.Namespace(ns))
			}
			if len(ts.TypeParams) > 0 {
				opts = append(opts, model.TypeParams(ts.TypeParams...))
			}
			types[ts] = unit.NewType(simple, opts...)
		}
	}

	ses := resolver.New(
		linkConfig(),
		uni,
		strategy.NewExactLookup(),
		strategy.NewScanLookup(),
	)
	for ts, t := range types {
		if err := link(ses, ts, t); err != nil {
			return nil, err
		}
	}
	return uni, nil
}

func link(ses apis.Session, ts *TypeSpec, t *model.Type) error {
	if ts.Extends != "" {
		base, err := ses.ResolveType(ts.Extends)
		if err != nil {
			return fmt.Errorf("manifest: %s extends %q: %w", ts.Name, ts.Extends, err)
		}
		t.SetBase(base)
	}
	for _, fs := range ts.Fields {
		ft, err := resolveRef(ses, ts, fs.Type)
		if err != nil {
			return err
		}
		t.AddField(fs.Name, ft)
	}
	for _, es := range ts.Events {
		et, err := resolveRef(ses, ts, es.Type)
		if err != nil {
			return err
		}
		t.AddEvent(es.Name, et)
	}
	for _, ps := range ts.Properties {
		pt, err := resolveRef(ses, ts, ps.Type)
		if err != nil {
			return err
		}
		index, err := resolveRefs(ses, ts, ps.Index)
		if err != nil {
			return err
		}
		t.AddProperty(ps.Name, pt, index...)
	}
	for _, cs := range ts.Constructors {
		params, err := resolveRefs(ses, ts, cs.Params)
		if err != nil {
			return err
		}
		t.AddConstructor(cs.Static, params...)
	}
	for _, ms := range ts.Methods {
		if ms.Arity > 0 {
			var perr error
			t.AddGenericMethod(ms.Name, ms.Arity, func(tp []apis.Type) []apis.Type {
				out := make([]apis.Type, len(ms.Params))
				for i, p := range ms.Params {
					if idx, ok := ident.MethodParamIndex(p); ok {
						if idx < 0 || idx >= len(tp) {
							perr = fmt.Errorf("manifest: %s.%s: parameter reference %q out of range", ts.Name, ms.Name, p)
							return nil
						}
						out[i] = tp[idx]
						continue
					}
					rt, err := resolveRef(ses, ts, p)
					if err != nil {
						perr = err
						return nil
					}
					out[i] = rt
				}
				return out
			})
			if perr != nil {
				return perr
			}
			continue
		}
		params, err := resolveRefs(ses, ts, ms.Params)
		if err != nil {
			return err
		}
		t.AddMethod(ms.Name, params...)
	}
	return nil
}

func resolveRef(ses apis.Session, ts *TypeSpec, ref string) (apis.Type, error) {
	t, err := ses.ResolveType(ref)
	if err != nil {
		return nil, fmt.Errorf("manifest: %s references %q: %w", ts.Name, ref, err)
	}
	return t, nil
}

func resolveRefs(ses apis.Session, ts *TypeSpec, refs []string) ([]apis.Type, error) {
	out := make([]apis.Type, len(refs))
	for i, r := range refs {
		t, err := resolveRef(ses, ts, r)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// linkConfig disables caching: linking mutates the universe between
// resolves, so memoized descriptors would be dropped constantly anyway.
func linkConfig() apis.Config {
	return config.NewConfig(config.WithCachePolicy(policy.Disabled))
}

func splitName(full string) (ns, simple string) {
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return "", full
}
