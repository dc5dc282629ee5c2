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

package model

import (
	"fmt"
	"strconv"

	"dirpx.dev/refid/apis"
)

// member is the single concrete member implementation. Declared members
// are unique objects within their declaring type; generic method
// instantiations compare by definition plus positional argument
// equality.
type member struct {
	kind    apis.Kind
	name    string
	decl    *Type
	vtype   apis.Type
	params  []apis.Type
	static  bool
	gparams []apis.Type

	def   *member
	targs []apis.Type
}

var _ apis.Member = (*member)(nil)

func (m *member) MemberKind() apis.Kind { return m.kind }

func (m *member) Name() string {
	if m.def != nil {
		return m.def.name
	}
	return m.name
}

func (m *member) Declaring() apis.Type {
	if m.def != nil {
		return m.def.decl
	}
	return m.decl
}

func (m *member) Params() []apis.Type { return m.params }

func (m *member) Static() bool { return m.static }

func (m *member) GenericArity() int {
	if m.def != nil {
		return len(m.def.gparams)
	}
	return len(m.gparams)
}

func (m *member) GenericArgs() []apis.Type {
	if m.def != nil {
		return m.targs
	}
	return m.gparams
}

// Instantiate builds a concrete generic method instance. Parameter types
// referencing the method's placeholders are substituted with the given
// arguments.
func (m *member) Instantiate(args []apis.Type) (apis.Member, error) {
	if m.kind != apis.KindMethod || len(m.gparams) == 0 {
		return nil, apis.ErrNotGenericMethod
	}
	if len(args) != len(m.gparams) {
		return nil, fmt.Errorf("%w: %s given %d", ErrArity, m.name, len(args))
	}
	params := make([]apis.Type, len(m.params))
	for i, p := range m.params {
		params[i] = substParam(p, args)
	}
	return &member{
		kind:   apis.KindMethod,
		params: params,
		def:    m,
		targs:  args,
	}, nil
}

// Equal compares by underlying metadata position: declared members by
// identity, instances by definition identity plus positional argument
// equality.
func (m *member) Equal(o apis.Member) bool {
	om, ok := o.(*member)
	if !ok || om == nil {
		return false
	}
	if m.def == nil && om.def == nil {
		return m == om
	}
	if m.def == nil || om.def == nil || m.def != om.def {
		return false
	}
	if len(m.targs) != len(om.targs) {
		return false
	}
	for i := range m.targs {
		if !m.targs[i].Equal(om.targs[i]) {
			return false
		}
	}
	return true
}

// substParam replaces method-level parameter placeholders with concrete
// arguments, descending through arrays, by-ref wrappers, and
// constructed generics. Unresolvable shapes are kept as-is.
func substParam(t apis.Type, args []apis.Type) apis.Type {
	switch {
	case t == nil:
		return nil
	case t.IsGenericParam() && t.MethodParam():
		if i := t.ParamIndex(); i >= 0 && i < len(args) {
			return args[i]
		}
		return t
	case t.IsArray():
		if e := substParam(t.Elem(), args); e != t.Elem() {
			if a, err := e.ArrayOf(t.Rank()); err == nil {
				return a
			}
		}
		return t
	case t.IsByRef():
		if e := substParam(t.Elem(), args); e != t.Elem() {
			if r, err := e.ByRef(); err == nil {
				return r
			}
		}
		return t
	}
	if mt, ok := t.(*Type); ok && mt.form == formConstructed {
		changed := false
		targs := make([]apis.Type, len(mt.targs))
		for i, a := range mt.targs {
			targs[i] = substParam(a, args)
			if targs[i] != a {
				changed = true
			}
		}
		if changed {
			if c, err := mt.def.Instantiate(targs); err == nil {
				return c
			}
		}
	}
	return t
}

// AddField declares a field of the given value type.
func (t *Type) AddField(name string, typ apis.Type) apis.Member {
	return t.addMember(&member{kind: apis.KindField, name: name, decl: t, vtype: typ})
}

// AddEvent declares an event of the given handler type.
func (t *Type) AddEvent(name string, typ apis.Type) apis.Member {
	return t.addMember(&member{kind: apis.KindEvent, name: name, decl: t, vtype: typ})
}

// AddProperty declares a property. Index parameters, when present, make
// it an indexed property.
func (t *Type) AddProperty(name string, typ apis.Type, index ...apis.Type) apis.Member {
	return t.addMember(&member{kind: apis.KindProperty, name: name, decl: t, vtype: typ, params: index})
}

// AddConstructor declares a static or instance constructor.
func (t *Type) AddConstructor(static bool, params ...apis.Type) apis.Member {
	return t.addMember(&member{kind: apis.KindConstructor, decl: t, static: static, params: params})
}

// AddMethod declares a non-generic method.
func (t *Type) AddMethod(name string, params ...apis.Type) apis.Member {
	return t.addMember(&member{kind: apis.KindMethod, name: name, decl: t, params: params})
}

// AddGenericMethod declares a generic method of the given arity. The
// params callback receives the parameter placeholders so signatures can
// reference them.
func (t *Type) AddGenericMethod(name string, arity int, params func(tp []apis.Type) []apis.Type) apis.Member {
	gparams := make([]apis.Type, arity)
	for i := 0; i < arity; i++ {
		gparams[i] = &Type{form: formParam, simple: "T" + strconv.Itoa(i), pidx: i, methodParam: true}
	}
	m := &member{kind: apis.KindMethod, name: name, decl: t, gparams: gparams}
	if params != nil {
		m.params = params(gparams)
	}
	return t.addMember(m)
}

func (t *Type) addMember(m *member) apis.Member {
	t.members = append(t.members, m)
	if t.unit != nil {
		t.unit.uni.rev.Add(1)
	}
	return m
}
