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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/refid/apis"
)

var (
	// ErrBadRank is returned for array ranks below 1.
	ErrBadRank = errors.New("model: array rank must be at least 1")
	// ErrNotGeneric is returned when instantiating a non-definition.
	ErrNotGeneric = errors.New("model: type is not a generic definition")
	// ErrArity is returned when the argument count does not match the
	// definition arity.
	ErrArity = errors.New("model: generic argument count mismatch")
)

type form int

const (
	formNamed form = iota
	formConstructed
	formArray
	formByRef
	formParam
)

// Type is a model type descriptor. Named types are unique objects within
// their unit; derived forms (arrays, by-ref wrappers, instantiations)
// compare structurally.
type Type struct {
	unit      *Unit
	ns        string
	simple    string
	declaring *Type
	base      apis.Type
	tparams   []*Type

	form form
	elem apis.Type
	rank int

	def   *Type
	targs []apis.Type

	pidx        int
	methodParam bool

	members []apis.Member
}

var _ apis.Type = (*Type)(nil)

// Name returns the short name. Generic definitions carry their arity
// suffix; derived forms carry their markers.
func (t *Type) Name() string {
	switch t.form {
	case formConstructed:
		return t.def.Name()
	case formArray:
		return t.elem.Name() + "[" + strings.Repeat(",", t.rank-1) + "]"
	case formByRef:
		return t.elem.Name() + "&"
	case formParam:
		return t.simple
	}
	if len(t.tparams) > 0 {
		return t.simple + "`" + strconv.Itoa(len(t.tparams))
	}
	return t.simple
}

// FullName returns the namespace-qualified name, including the declaring
// chain for nested types.
func (t *Type) FullName() string {
	switch t.form {
	case formConstructed:
		return t.def.FullName()
	case formArray:
		return t.elem.FullName() + "[" + strings.Repeat(",", t.rank-1) + "]"
	case formByRef:
		return t.elem.FullName() + "&"
	case formParam:
		return t.simple
	}
	if t.declaring != nil {
		return t.declaring.FullName() + "." + t.Name()
	}
	if t.ns != "" {
		return t.ns + "." + t.Name()
	}
	return t.Name()
}

// Declaring returns the declaring type for nested types.
func (t *Type) Declaring() apis.Type {
	d := t.declaring
	if t.form == formConstructed {
		d = t.def.declaring
	}
	if d == nil {
		return nil
	}
	return d
}

// Base returns the inherited base type.
func (t *Type) Base() apis.Type {
	switch t.form {
	case formNamed:
		return t.base
	case formConstructed:
		return t.def.base
	default:
		return nil
	}
}

// SetBase links the base type after declaration. Loaders that create
// every type before wiring inheritance use this instead of Extends.
func (t *Type) SetBase(base apis.Type) {
	t.base = base
	if t.unit != nil {
		t.unit.uni.rev.Add(1)
	}
}

// IsArray reports the array form.
func (t *Type) IsArray() bool { return t.form == formArray }

// IsByRef reports the by-ref form.
func (t *Type) IsByRef() bool { return t.form == formByRef }

// IsGenericDefinition reports an open generic definition.
func (t *Type) IsGenericDefinition() bool {
	return t.form == formNamed && len(t.tparams) > 0
}

// IsGenericParam reports a generic parameter placeholder.
func (t *Type) IsGenericParam() bool { return t.form == formParam }

// MethodParam reports whether a parameter belongs to a method.
func (t *Type) MethodParam() bool { return t.methodParam }

// ParamIndex returns the zero-based parameter position.
func (t *Type) ParamIndex() int { return t.pidx }

// Elem returns the element of arrays and by-ref wrappers.
func (t *Type) Elem() apis.Type { return t.elem }

// Rank returns the array rank.
func (t *Type) Rank() int { return t.rank }

// GenericArgs returns parameter placeholders for definitions and
// concrete arguments for constructed types.
func (t *Type) GenericArgs() []apis.Type {
	switch {
	case t.form == formConstructed:
		return t.targs
	case t.form == formNamed && len(t.tparams) > 0:
		out := make([]apis.Type, len(t.tparams))
		for i, p := range t.tparams {
			out[i] = p
		}
		return out
	default:
		return nil
	}
}

// ArrayOf constructs an array type of the given rank over t.
func (t *Type) ArrayOf(rank int) (apis.Type, error) {
	if rank < 1 {
		return nil, ErrBadRank
	}
	return &Type{form: formArray, elem: t, rank: rank}, nil
}

// ByRef constructs a by-reference wrapper over t.
func (t *Type) ByRef() (apis.Type, error) {
	return &Type{form: formByRef, elem: t}, nil
}

// Instantiate constructs a closed generic type from a definition.
func (t *Type) Instantiate(args []apis.Type) (apis.Type, error) {
	if !t.IsGenericDefinition() {
		return nil, fmt.Errorf("%w: %s", ErrNotGeneric, t.FullName())
	}
	if len(args) != len(t.tparams) {
		return nil, fmt.Errorf("%w: %s given %d", ErrArity, t.Name(), len(args))
	}
	return &Type{form: formConstructed, def: t, targs: args}, nil
}

// Members returns the members declared directly on the type, as a
// snapshot. Constructed generics expose the definition's members.
func (t *Type) Members() []apis.Member {
	switch t.form {
	case formNamed:
		return append([]apis.Member(nil), t.members...)
	case formConstructed:
		return append([]apis.Member(nil), t.def.members...)
	default:
		return nil
	}
}

// Equal reports whether both handles denote the same type.
func (t *Type) Equal(o apis.Type) bool {
	ot, ok := o.(*Type)
	if !ok || ot == nil {
		return false
	}
	if t.form != ot.form {
		return false
	}
	switch t.form {
	case formNamed:
		return t == ot
	case formConstructed:
		if t.def != ot.def || len(t.targs) != len(ot.targs) {
			return false
		}
		for i := range t.targs {
			if !t.targs[i].Equal(ot.targs[i]) {
				return false
			}
		}
		return true
	case formArray:
		return t.rank == ot.rank && t.elem.Equal(ot.elem)
	case formByRef:
		return t.elem.Equal(ot.elem)
	case formParam:
		return t.methodParam == ot.methodParam && t.pidx == ot.pidx
	}
	return false
}
