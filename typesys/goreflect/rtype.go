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

package goreflect

import (
	"errors"
	"reflect"

	"dirpx.dev/refid/apis"
)

var (
	// ErrBadRank is returned for array ranks reflect cannot express.
	ErrBadRank = errors.New("refid(goreflect): go arrays are rank 1")
	// ErrNotGeneric is returned for generic operations on reflect types.
	ErrNotGeneric = errors.New("refid(goreflect): reflect types carry no open generics")
)

// rtype adapts a reflect.Type to the resolution model. Slices play the
// role of rank-1 arrays and pointers the role of by-ref types.
type rtype struct {
	t    reflect.Type
	unit *Unit
}

var _ apis.Type = (*rtype)(nil)

func (r *rtype) Name() string {
	switch r.t.Kind() {
	case reflect.Slice:
		return r.elem().Name() + "[]"
	case reflect.Pointer:
		return r.elem().Name() + "&"
	}
	if name, ok := r.unit.nameFor(r.t); ok {
		if i := lastDot(name); i >= 0 {
			return name[i+1:]
		}
		return name
	}
	return stripTypeParams(r.t.Name())
}

func (r *rtype) FullName() string {
	switch r.t.Kind() {
	case reflect.Slice:
		return r.elem().FullName() + "[]"
	case reflect.Pointer:
		return r.elem().FullName() + "&"
	}
	if name, ok := r.unit.nameFor(r.t); ok {
		return name
	}
	return defaultName(r.t)
}

func (r *rtype) Declaring() apis.Type { return nil }

func (r *rtype) Base() apis.Type { return nil }

func (r *rtype) IsArray() bool { return r.t.Kind() == reflect.Slice }

func (r *rtype) IsByRef() bool { return r.t.Kind() == reflect.Pointer }

func (r *rtype) IsGenericDefinition() bool { return false }

func (r *rtype) IsGenericParam() bool { return false }

func (r *rtype) MethodParam() bool { return false }

func (r *rtype) ParamIndex() int { return -1 }

func (r *rtype) Elem() apis.Type {
	switch r.t.Kind() {
	case reflect.Slice, reflect.Pointer:
		return r.elem()
	}
	return nil
}

func (r *rtype) Rank() int {
	if r.t.Kind() == reflect.Slice {
		return 1
	}
	return 0
}

func (r *rtype) GenericArgs() []apis.Type { return nil }

func (r *rtype) ArrayOf(rank int) (apis.Type, error) {
	if rank != 1 {
		return nil, ErrBadRank
	}
	return &rtype{t: reflect.SliceOf(r.t), unit: r.unit}, nil
}

func (r *rtype) ByRef() (apis.Type, error) {
	return &rtype{t: reflect.PointerTo(r.t), unit: r.unit}, nil
}

func (r *rtype) Instantiate(args []apis.Type) (apis.Type, error) {
	return nil, ErrNotGeneric
}

// Members exposes struct fields as fields and declared methods as
// methods. The receiver is dropped from method parameter lists.
func (r *rtype) Members() []apis.Member {
	var out []apis.Member
	if r.t.Kind() == reflect.Struct {
		for i := 0; i < r.t.NumField(); i++ {
			f := r.t.Field(i)
			if !f.IsExported() {
				continue
			}
			out = append(out, &rmember{
				kind: apis.KindField,
				name: f.Name,
				decl: r,
			})
		}
	}
	pt := reflect.PointerTo(r.t)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		params := make([]apis.Type, 0, m.Type.NumIn()-1)
		for j := 1; j < m.Type.NumIn(); j++ {
			params = append(params, &rtype{t: m.Type.In(j), unit: r.unit})
		}
		out = append(out, &rmember{
			kind:   apis.KindMethod,
			name:   m.Name,
			decl:   r,
			params: params,
		})
	}
	return out
}

func (r *rtype) Equal(o apis.Type) bool {
	or, ok := o.(*rtype)
	return ok && or != nil && r.t == or.t
}

func (r *rtype) elem() *rtype {
	return &rtype{t: r.t.Elem(), unit: r.unit}
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}

// rmember is a field or method lifted from reflection. Members compare
// structurally since reflection yields fresh descriptors on each walk.
type rmember struct {
	kind   apis.Kind
	name   string
	decl   *rtype
	params []apis.Type
}

var _ apis.Member = (*rmember)(nil)

func (m *rmember) MemberKind() apis.Kind    { return m.kind }
func (m *rmember) Name() string             { return m.name }
func (m *rmember) Declaring() apis.Type     { return m.decl }
func (m *rmember) Params() []apis.Type      { return m.params }
func (m *rmember) Static() bool             { return false }
func (m *rmember) GenericArity() int        { return 0 }
func (m *rmember) GenericArgs() []apis.Type { return nil }

func (m *rmember) Instantiate(args []apis.Type) (apis.Member, error) {
	return nil, apis.ErrNotGenericMethod
}

func (m *rmember) Equal(o apis.Member) bool {
	om, ok := o.(*rmember)
	if !ok || om == nil {
		return false
	}
	return m.kind == om.kind && m.name == om.name &&
		m.decl.t == om.decl.t && len(m.params) == len(om.params)
}
